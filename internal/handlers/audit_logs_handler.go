package handlers

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/smart-hire/internal/audit"
	"github.com/BruksfildServices01/smart-hire/internal/httperr"
	"github.com/BruksfildServices01/smart-hire/internal/middleware"
	"github.com/BruksfildServices01/smart-hire/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	store audit.Store
	log   *slog.Logger
}

func NewAuditLogsHandler(store audit.Store, log *slog.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{store: store, log: log}
}

// List returns the caller's own audit trail, newest first.
func (h *AuditLogsHandler) List(c *gin.Context) {
	who := middleware.Actor(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// --------------------------------------------------
	// Filters, always scoped to the provider
	// --------------------------------------------------

	q := audit.Query{
		ProviderID: who.ID,
		Action:     c.Query("action"),
		Entity:     c.Query("entity"),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}

	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		q.From = from
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		q.To = to.Add(24 * time.Hour)
	}

	logs, total, err := h.store.ListAuditLogs(c.Request.Context(), q)
	if err != nil {
		h.log.Error("list audit logs", slog.String("provider_id", who.ID), slog.Any("error", err))
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	if logs == nil {
		logs = []models.AuditLog{}
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
