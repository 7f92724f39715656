package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/smart-hire/internal/httperr"
)

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	rps   rate.Limit
	burst int
	idle  time.Duration

	mu       sync.Mutex
	visitors map[string]*visitor
	lastGC   time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		idle:     10 * time.Minute,
		visitors: make(map[string]*visitor),
		lastGC:   time.Now(),
	}
}

func (rl *RateLimiter) Allow(ip string) bool {
	return rl.limiter(ip, time.Now()).Allow()
}

func (rl *RateLimiter) limiter(ip string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// idle visitors are swept at most once per idle period
	if now.Sub(rl.lastGC) > rl.idle {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) > rl.idle {
				delete(rl.visitors, k)
			}
		}
		rl.lastGC = now
	}

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "Too many requests, slow down.")
			c.Abort()
			return
		}
		c.Next()
	}
}
