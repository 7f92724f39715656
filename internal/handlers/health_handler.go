package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Checks    map[string]string `json:"checks"`
}

type HealthHandler struct {
	checks    map[string]Check
	startTime time.Time
	timeout   time.Duration
}

func NewHealthHandler(checks map[string]Check) *HealthHandler {
	return &HealthHandler{
		checks:    checks,
		startTime: time.Now(),
		timeout:   3 * time.Second,
	}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "healthy"
	results := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			results[name] = "unhealthy: " + err.Error()
			status = "unhealthy"
			continue
		}
		results[name] = "healthy"
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Checks:    results,
	})
}
