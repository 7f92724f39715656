package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbid(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInvalidState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes err as a JSON error response. Anything that is not a
// BusinessError is logged and reported as a generic internal error.
func FromError(c *gin.Context, log *slog.Logger, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		message := be.Message
		if message == "" {
			message = be.Code
		}
		if be.Kind == KindPartialFailure {
			log.Error("partial failure",
				slog.String("code", be.Code),
				slog.String("path", c.FullPath()),
			)
		}
		Write(c, StatusFor(be.Kind), be.Code, message)
		return
	}

	log.Error("request failed",
		slog.String("path", c.FullPath()),
		slog.String("method", c.Request.Method),
		slog.Any("error", err),
	)
	Internal(c, "internal_error", "Something went wrong, please try again.")
}
