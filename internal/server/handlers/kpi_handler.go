package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/server/respond"
	"github.com/mamadbah2/coopledger/internal/service/kpi"
	"github.com/mamadbah2/coopledger/internal/service/scenario"
	"github.com/mamadbah2/coopledger/pkg/numeric"
)

// KPIHandler serves the KPI summaries and the loss reduction simulator.
type KPIHandler struct {
	svc    *kpi.Service
	logger *zap.Logger
}

// NewKPIHandler constructs the HTTP handler adapter.
func NewKPIHandler(svc *kpi.Service, logger *zap.Logger) *KPIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KPIHandler{svc: svc, logger: logger}
}

// Cooperative returns the rolling KPIs of one cooperative.
func (h *KPIHandler) Cooperative(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}

	kpis, err := h.svc.Cooperative(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, kpis)
}

// Overview returns the KPIs of every cooperative.
func (h *KPIHandler) Overview(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}

	overview, err := h.svc.Overview(c.Request.Context(), caller)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// LossReduction runs the what-if simulator. Negative inputs are rejected by binding.
func (h *KPIHandler) LossReduction(c *gin.Context) {
	var req models.ScenarioRequest
	if !bindJSON(c, &req) {
		return
	}
	resp := scenario.Simulate(req)
	if !numeric.IsFinite(resp.CurrentSellableKg, resp.TargetSellableKg, resp.AdditionalSellableKg,
		resp.CurrentRevenue, resp.TargetRevenue, resp.RevenueGain) {
		respond.BadRequest(c, errors.New("scenario inputs are too large to simulate"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
