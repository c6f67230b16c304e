package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/server/respond"
	"github.com/mamadbah2/coopledger/internal/service/kpi"
	"github.com/mamadbah2/coopledger/internal/service/records"
)

// CooperativeHandler serves the cooperative directory and per-cooperative stats.
type CooperativeHandler struct {
	records *records.Service
	kpis    *kpi.Service
	logger  *zap.Logger
}

// NewCooperativeHandler constructs the HTTP handler adapter.
func NewCooperativeHandler(recordsSvc *records.Service, kpiSvc *kpi.Service, logger *zap.Logger) *CooperativeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CooperativeHandler{records: recordsSvc, kpis: kpiSvc, logger: logger}
}

// List serves GET /cooperatives.
func (h *CooperativeHandler) List(c *gin.Context) {
	coops, err := h.records.ListCooperatives(c.Request.Context())
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, coops)
}

// Get serves GET /cooperatives/:id.
func (h *CooperativeHandler) Get(c *gin.Context) {
	coop, err := h.records.GetCooperative(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, coop)
}

// Create serves POST /cooperatives.
func (h *CooperativeHandler) Create(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}
	var input models.CooperativeInput
	if !bindJSON(c, &input) {
		return
	}

	coop, err := h.records.CreateCooperative(c.Request.Context(), caller, input)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, coop)
}

// Stats returns all-time totals for a cooperative.
func (h *CooperativeHandler) Stats(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}

	stats, err := h.kpis.Stats(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
