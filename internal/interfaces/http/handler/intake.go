package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	intakeapp "github.com/wms/backend/internal/application/intake"
	"github.com/wms/backend/internal/interfaces/http/middleware"
)

// IntakeHandler handles inbound batch API endpoints
type IntakeHandler struct {
	BaseHandler
	intakeService *intakeapp.IntakeService
}

// NewIntakeHandler creates a new IntakeHandler
func NewIntakeHandler(intakeService *intakeapp.IntakeService) *IntakeHandler {
	return &IntakeHandler{intakeService: intakeService}
}

// RegisterRoutes registers intake routes
func (h *IntakeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	lots := rg.Group("/lots")
	{
		lots.POST("", h.StoreBatch)
		lots.GET("/unaccepted", h.ListUnaccepted)
		lots.GET("/:id", h.Get)
		lots.POST("/:id/accept", h.Accept)
	}
}

// StoreBatch registers an inbound batch as an unaccepted lot
func (h *IntakeHandler) StoreBatch(c *gin.Context) {
	var req intakeapp.StoreBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.intakeService.StoreBatch(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListUnaccepted returns lots still waiting for acceptance
func (h *IntakeHandler) ListUnaccepted(c *gin.Context) {
	lots, err := h.intakeService.ListUnacceptedLots(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lots)
}

// Get returns one lot by ID
func (h *IntakeHandler) Get(c *gin.Context) {
	id, ok := h.bindLotID(c)
	if !ok {
		return
	}

	resp, err := h.intakeService.GetLot(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Accept accepts a pending lot: units get slots, stock becomes available
// and an import movement is recorded
func (h *IntakeHandler) Accept(c *gin.Context) {
	id, ok := h.bindLotID(c)
	if !ok {
		return
	}

	operatorID, err := middleware.GetOperatorID(c)
	if err != nil {
		h.Unauthorized(c, "Operator identity required")
		return
	}

	resp, err := h.intakeService.AcceptLot(c.Request.Context(), id, operatorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *IntakeHandler) bindLotID(c *gin.Context) (uuid.UUID, bool) {
	idStr, ok := h.BindID(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.BadRequest(c, "Invalid lot ID")
		return uuid.Nil, false
	}
	return id, true
}
