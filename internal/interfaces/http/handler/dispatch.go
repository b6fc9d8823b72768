package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	dispatchapp "github.com/wms/backend/internal/application/dispatch"
	"github.com/wms/backend/internal/domain/dispatch"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

// DispatchHandler handles outbound retrieval API endpoints
type DispatchHandler struct {
	BaseHandler
	dispatchService *dispatchapp.DispatchService
}

// NewDispatchHandler creates a new DispatchHandler
func NewDispatchHandler(dispatchService *dispatchapp.DispatchService) *DispatchHandler {
	return &DispatchHandler{dispatchService: dispatchService}
}

// RegisterRoutes registers dispatch routes
func (h *DispatchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dispatches := rg.Group("/dispatches")
	{
		dispatches.POST("", h.Create)
		dispatches.GET("", h.List)
		dispatches.GET("/:id", h.Get)
		dispatches.POST("/:id/accept", h.Accept)
		dispatches.POST("/:id/reject", h.Reject)
		dispatches.POST("/:id/complete", h.Complete)
	}
}

// listDispatchesRequest filters the dispatch list by state
type listDispatchesRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING ACCEPTED REJECTED COMPLETED"`
}

// Create registers a retrieval request; matching units are reserved and
// the dispatch waits for an operator decision
func (h *DispatchHandler) Create(c *gin.Context) {
	var req dispatchapp.CreateRetrieveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.dispatchService.CreateRetrieveRequest(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns dispatches in the requested state, pending by default
func (h *DispatchHandler) List(c *gin.Context) {
	var req listDispatchesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid status filter")
		return
	}
	status := dispatch.DispatchStatusPending
	if req.Status != "" {
		status = dispatch.DispatchStatus(req.Status)
	}

	dispatches, err := h.dispatchService.ListDispatchesByStatus(c.Request.Context(), status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dispatches)
}

// Get returns one dispatch by ID
func (h *DispatchHandler) Get(c *gin.Context) {
	id, ok := h.bindDispatchID(c)
	if !ok {
		return
	}

	resp, err := h.dispatchService.GetDispatch(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Accept approves a pending dispatch: reserved units leave their slots
// and an export movement is recorded
func (h *DispatchHandler) Accept(c *gin.Context) {
	id, ok := h.bindDispatchID(c)
	if !ok {
		return
	}

	operatorID, err := middleware.GetOperatorID(c)
	if err != nil {
		h.Unauthorized(c, "Operator identity required")
		return
	}

	resp, err := h.dispatchService.AcceptDispatch(c.Request.Context(), id, operatorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reject declines a pending dispatch and releases its reservations
func (h *DispatchHandler) Reject(c *gin.Context) {
	id, ok := h.bindDispatchID(c)
	if !ok {
		return
	}

	var req dispatchapp.RejectDispatchRequest
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.dispatchService.RejectDispatch(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Complete marks an accepted dispatch as picked up
func (h *DispatchHandler) Complete(c *gin.Context) {
	id, ok := h.bindDispatchID(c)
	if !ok {
		return
	}

	resp, err := h.dispatchService.CompleteDispatch(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *DispatchHandler) bindDispatchID(c *gin.Context) (uuid.UUID, bool) {
	idStr, ok := h.BindID(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.BadRequest(c, "Invalid dispatch ID")
		return uuid.Nil, false
	}
	return id, true
}
