package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/server/respond"
	"github.com/mamadbah2/coopledger/internal/service/users"
)

// UserHandler serves account administration.
type UserHandler struct {
	svc    *users.Service
	logger *zap.Logger
}

// NewUserHandler constructs the HTTP handler adapter.
func NewUserHandler(svc *users.Service, logger *zap.Logger) *UserHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserHandler{svc: svc, logger: logger}
}

// List serves GET /users.
func (h *UserHandler) List(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}

	list, err := h.svc.List(c.Request.Context(), caller)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Update serves PUT /users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}
	var req models.UserUpdateRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	user, err := h.svc.Update(c.Request.Context(), caller, c.Param("id"), req)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete serves DELETE /users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
