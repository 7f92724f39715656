package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/smart-hire/internal/actor"
	"github.com/BruksfildServices01/smart-hire/internal/auth"
	"github.com/BruksfildServices01/smart-hire/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// AuthMiddleware requires a bearer token and stores the caller both on the
// gin context and as an actor.Actor in the request context.
func AuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization header is required.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Expected a bearer token.")
			c.Abort()
			return
		}

		a, err := issuer.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Token is invalid or expired.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, a.ID)
		c.Set(ContextUserRole, a.Role)
		c.Request = c.Request.WithContext(actor.WithActor(c.Request.Context(), a))

		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, _ := actor.FromContext(c.Request.Context())
		if a.Role != role {
			httperr.Forbid(c, "forbidden", "This action requires the "+role+" role.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Actor returns the authenticated caller, or the zero Actor.
func Actor(c *gin.Context) actor.Actor {
	a, _ := actor.FromContext(c.Request.Context())
	return a
}
