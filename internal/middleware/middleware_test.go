package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/smart-hire/internal/auth"
	"github.com/BruksfildServices01/smart-hire/internal/logger"
	"github.com/BruksfildServices01/smart-hire/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	token, _ := issuer.Issue(&models.User{ID: "u1", Role: "provider", Name: "Pat"})

	r := gin.New()
	r.GET("/me", AuthMiddleware(issuer), func(c *gin.Context) {
		a := Actor(c)
		c.JSON(http.StatusOK, gin.H{"id": a.ID, "role": a.Role})
	})
	r.GET("/provider-only", AuthMiddleware(issuer), RequireRole("seeker"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"no header", "/me", "", http.StatusUnauthorized},
		{"wrong scheme", "/me", "Basic abc", http.StatusUnauthorized},
		{"bad token", "/me", "Bearer nope", http.StatusUnauthorized},
		{"valid", "/me", "Bearer " + token, http.StatusOK},
		{"wrong role", "/provider-only", "Bearer " + token, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("status %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	r := gin.New()
	r.POST("/x", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected codes %v", codes)
	}

	if !rl.Allow("10.0.0.2") {
		t.Fatal("other clients have their own bucket")
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(logger.Discard()), Metrics())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(HeaderRequestID) == "" {
		t.Fatal("missing generated request id")
	}

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(HeaderRequestID) != "abc" {
		t.Fatal("incoming request id must be kept")
	}
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "https://app.example" {
		t.Fatalf("preflight: %d %v", w.Code, w.Header())
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("unlisted origin must not be reflected")
	}
}
