package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/server/respond"
	"github.com/mamadbah2/coopledger/internal/service/export"
	"github.com/mamadbah2/coopledger/internal/service/maintenance"
)

// MaintenanceHandler serves the officer-only seed, repair and export operations.
type MaintenanceHandler struct {
	svc      *maintenance.Service
	exporter *export.Service
	logger   *zap.Logger
}

// NewMaintenanceHandler constructs the HTTP handler adapter.
func NewMaintenanceHandler(svc *maintenance.Service, exporter *export.Service, logger *zap.Logger) *MaintenanceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaintenanceHandler{svc: svc, exporter: exporter, logger: logger}
}

// SeedCooperatives serves POST /init-mvp-data.
func (h *MaintenanceHandler) SeedCooperatives(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}

	result, err := h.svc.SeedCooperatives(c.Request.Context(), caller)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SeedMetrics serves POST /init-data.
func (h *MaintenanceHandler) SeedMetrics(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}

	result, err := h.svc.SeedMetrics(c.Request.Context(), caller)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Reinit wipes cooperatives, logs and nonconformities, then reseeds.
func (h *MaintenanceHandler) Reinit(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}

	result, err := h.svc.Reinit(c.Request.Context(), caller)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// FixManagerCooperatives accepts an optional {"cooperative_id": ...} body.
func (h *MaintenanceHandler) FixManagerCooperatives(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}
	var req models.FixManagersRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	result, err := h.svc.FixManagerCooperatives(c.Request.Context(), caller, req)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RewriteEmailDomain serves POST /maintenance/email-domain.
func (h *MaintenanceHandler) RewriteEmailDomain(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}
	var req models.EmailDomainRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.svc.RewriteEmailDomain(c.Request.Context(), caller, req)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExportProductionLogs writes logs to the configured sheet; 503 when none is configured.
func (h *MaintenanceHandler) ExportProductionLogs(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}

	result, err := h.exporter.ProductionLogs(c.Request.Context(), caller, c.Query("cooperative_id"))
	if errors.Is(err, export.ErrDisabled) {
		respond.Unavailable(c, err.Error())
		return
	}
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
