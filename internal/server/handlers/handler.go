package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/apperr"
	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/server/middleware"
	"github.com/mamadbah2/coopledger/internal/server/respond"
)

// callerOrAbort fetches the authenticated user; it aborts with 401 when the
// route was mounted without the auth middleware.
func callerOrAbort(c *gin.Context, logger *zap.Logger) (models.User, bool) {
	caller, ok := middleware.Caller(c)
	if !ok {
		respond.Error(c, logger, apperr.Unauthenticated("missing bearer token"))
		return models.User{}, false
	}
	return caller, true
}

// bindJSON decodes and validates the request body, aborting with 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respond.BadRequest(c, err)
		return false
	}
	return true
}

// bindOptionalJSON behaves like bindJSON but accepts an empty body.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	return bindJSON(c, dst)
}
