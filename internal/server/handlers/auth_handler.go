package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/server/respond"
	"github.com/mamadbah2/coopledger/internal/service/auth"
)

// AuthHandler serves registration, login and current-user lookup.
type AuthHandler struct {
	svc    *auth.Service
	logger *zap.Logger
}

// NewAuthHandler constructs the HTTP handler adapter.
func NewAuthHandler(svc *auth.Service, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

// Register creates an account and returns its credential.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login exchanges credentials for a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, caller)
}
