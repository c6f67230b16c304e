package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/server/respond"
	"github.com/mamadbah2/coopledger/internal/service/records"
)

// FarmHandler serves farm telemetry and ESG periods.
type FarmHandler struct {
	svc    *records.Service
	logger *zap.Logger
}

// NewFarmHandler constructs the HTTP handler adapter.
func NewFarmHandler(svc *records.Service, logger *zap.Logger) *FarmHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FarmHandler{svc: svc, logger: logger}
}

// ListFarms serves GET /farms.
func (h *FarmHandler) ListFarms(c *gin.Context) {
	farms, err := h.svc.ListFarms(c.Request.Context())
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, farms)
}

// GetFarm serves GET /farms/:id.
func (h *FarmHandler) GetFarm(c *gin.Context) {
	farm, err := h.svc.GetFarm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, farm)
}

// CreateFarm serves POST /farms.
func (h *FarmHandler) CreateFarm(c *gin.Context) {
	var input models.FarmInput
	if !bindJSON(c, &input) {
		return
	}

	farm, err := h.svc.CreateFarm(c.Request.Context(), input)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, farm)
}

// ListESG serves GET /esg.
func (h *FarmHandler) ListESG(c *gin.Context) {
	metrics, err := h.svc.ListESG(c.Request.Context())
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// CreateESG serves POST /esg.
func (h *FarmHandler) CreateESG(c *gin.Context) {
	var input models.ESGInput
	if !bindJSON(c, &input) {
		return
	}

	metrics, err := h.svc.CreateESG(c.Request.Context(), input)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, metrics)
}
