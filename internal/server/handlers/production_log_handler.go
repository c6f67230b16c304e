package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/server/respond"
	"github.com/mamadbah2/coopledger/internal/service/records"
)

// ProductionLogHandler serves production log CRUD.
type ProductionLogHandler struct {
	svc    *records.Service
	logger *zap.Logger
}

// NewProductionLogHandler constructs the HTTP handler adapter.
func NewProductionLogHandler(svc *records.Service, logger *zap.Logger) *ProductionLogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductionLogHandler{svc: svc, logger: logger}
}

// List accepts an optional cooperative_id query filter.
func (h *ProductionLogHandler) List(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}

	logs, err := h.svc.ListProductionLogs(c.Request.Context(), caller, c.Query("cooperative_id"))
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// Get returns one production log.
func (h *ProductionLogHandler) Get(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}

	log, err := h.svc.GetProductionLog(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

// Create records a production log and any nonconformity it opens.
func (h *ProductionLogHandler) Create(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}
	var input models.ProductionLogInput
	if !bindJSON(c, &input) {
		return
	}

	created, err := h.svc.CreateProductionLog(c.Request.Context(), caller, input)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update applies a partial update to a production log.
func (h *ProductionLogHandler) Update(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}
	var update models.ProductionLogUpdate
	if !bindOptionalJSON(c, &update) {
		return
	}

	log, err := h.svc.UpdateProductionLog(c.Request.Context(), caller, c.Param("id"), update)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

// Delete removes a production log.
func (h *ProductionLogHandler) Delete(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}

	if err := h.svc.DeleteProductionLog(c.Request.Context(), caller, c.Param("id")); err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
