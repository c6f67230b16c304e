package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/coopledger/internal/domain/models"
	"github.com/mamadbah2/coopledger/internal/server/respond"
	"github.com/mamadbah2/coopledger/internal/service/records"
)

// NonconformityHandler serves nonconformity tracking.
type NonconformityHandler struct {
	svc    *records.Service
	logger *zap.Logger
}

// NewNonconformityHandler constructs the HTTP handler adapter.
func NewNonconformityHandler(svc *records.Service, logger *zap.Logger) *NonconformityHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NonconformityHandler{svc: svc, logger: logger}
}

// List accepts optional cooperative_id and status query filters.
func (h *NonconformityHandler) List(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}

	ncs, err := h.svc.ListNonconformities(c.Request.Context(), caller, c.Query("cooperative_id"), c.Query("status"))
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ncs)
}

// Get returns one nonconformity.
func (h *NonconformityHandler) Get(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}

	nc, err := h.svc.GetNonconformity(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, nc)
}

// Create records a nonconformity.
func (h *NonconformityHandler) Create(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}
	var input models.NonconformityInput
	if !bindJSON(c, &input) {
		return
	}

	nc, err := h.svc.CreateNonconformity(c.Request.Context(), caller, input)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, nc)
}

// Update applies a JSON body and/or the status and assigned_to query
// parameters. Query values win over body values.
func (h *NonconformityHandler) Update(c *gin.Context) {
	caller, ok := callerOrAbort(c, h.logger)
	if !ok {
		return
	}
	var update models.NonconformityUpdate
	if !bindOptionalJSON(c, &update) {
		return
	}

	if raw, present := c.GetQuery("status"); present {
		status, err := models.ParseNonconformityStatus(raw)
		if err != nil {
			respond.BadRequest(c, err)
			return
		}
		update.Status = &status
	}
	if assignee, present := c.GetQuery("assigned_to"); present {
		update.AssignedTo = &assignee
	}

	nc, err := h.svc.UpdateNonconformity(c.Request.Context(), caller, c.Param("id"), update)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, nc)
}
