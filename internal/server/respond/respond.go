// Package respond writes JSON success and error bodies for the HTTP layer.
package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/apperr"
)

// ErrorBody is the envelope of every failed response.
type ErrorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// Status maps a classified error to its HTTP status and code.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, "validation_failed"
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// Error aborts the request with the status matching err. Unclassified errors
// are logged and reported as a generic internal error.
func Error(c *gin.Context, logger *zap.Logger, err error) {
	status, code := Status(err)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
		}
		c.AbortWithStatusJSON(status, ErrorBody{Error: code, Detail: "internal server error"})
		return
	}
	c.AbortWithStatusJSON(status, ErrorBody{Error: code, Detail: apperr.Message(err, err.Error())})
}

// BadRequest aborts with a validation error built from a binding failure.
func BadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorBody{Error: "validation_failed", Detail: err.Error()})
}

// Unavailable aborts with 503 for optional features that are not configured.
func Unavailable(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorBody{Error: "unavailable", Detail: detail})
}
