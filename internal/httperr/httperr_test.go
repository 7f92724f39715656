package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/smart-hire/internal/logger"
)

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", Validation("missing_fields", "x"), http.StatusBadRequest, "missing_fields"},
		{"unauthenticated", Unauthenticated("unauthorized", "x"), http.StatusUnauthorized, "unauthorized"},
		{"forbidden", Forbidden("forbidden", "x"), http.StatusForbidden, "forbidden"},
		{"missing", Missing("booking_not_found", "x"), http.StatusNotFound, "booking_not_found"},
		{"conflict", Conflict("slot_unavailable", "x"), http.StatusConflict, "slot_unavailable"},
		{"invalid state", InvalidState("invalid_transition", "x"), http.StatusConflict, "invalid_transition"},
		{"partial failure", PartialFailure("partial_failure", "x"), http.StatusInternalServerError, "partial_failure"},
		{"wrapped business error", fmt.Errorf("save: %w", Conflict("time_conflict", "x")), http.StatusConflict, "time_conflict"},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			FromError(c, logger.Discard(), tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("status %d, want %d", w.Code, tt.wantStatus)
			}
			var body HTTPError
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Fatalf("error_code %q, want %q", body.Code, tt.wantCode)
			}
		})
	}
}

func TestBusinessErrorHelpers(t *testing.T) {
	err := fmt.Errorf("wrap: %w", Forbidden("not_booking_party", "no"))

	if !IsBusiness(err, "not_booking_party") || IsBusiness(err, "other") {
		t.Fatal("IsBusiness must match the wrapped code only")
	}
	if kind, ok := KindOf(err); !ok || kind != KindForbidden {
		t.Fatalf("KindOf = %v, %v", kind, ok)
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Fatal("plain errors have no kind")
	}
	if got := (BusinessError{Code: "c"}).Error(); got != "c" {
		t.Fatalf("Error() without message = %q", got)
	}
}
