package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

// MovementHandler exposes the stock movement audit log
type MovementHandler struct {
	BaseHandler
	movements inventory.StockMovementRepository
}

// NewMovementHandler creates a new MovementHandler
func NewMovementHandler(movements inventory.StockMovementRepository) *MovementHandler {
	return &MovementHandler{movements: movements}
}

// RegisterRoutes registers movement routes
func (h *MovementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	movements := rg.Group("/movements")
	{
		movements.GET("", h.List)
		movements.GET("/sections/:id", h.ListBySection)
	}
}

// MovementResponse represents one audit record in API responses
type MovementResponse struct {
	ID           uuid.UUID `json:"id"`
	MovementType string    `json:"movement_type"`
	SourceType   string    `json:"source_type"`
	SourceID     uuid.UUID `json:"source_id"`
	SectionID    uuid.UUID `json:"section_id"`
	Quantity     int       `json:"quantity"`
	OperatorID   uuid.UUID `json:"operator_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type listMovementsRequest struct {
	dto.ListRequest
	MovementType string `form:"movement_type" binding:"omitempty,oneof=IMPORT EXPORT"`
}

// List returns recent movements, newest first
func (h *MovementHandler) List(c *gin.Context) {
	var req listMovementsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid list parameters")
		return
	}
	req.Normalize()

	filter := shared.DefaultFilter()
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	if req.MovementType != "" {
		filter.Filters["movement_type"] = req.MovementType
	}

	movements, err := h.movements.FindRecent(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toMovementResponses(movements))
}

// ListBySection returns the movements that touched one section
func (h *MovementHandler) ListBySection(c *gin.Context) {
	idStr, ok := h.BindID(c)
	if !ok {
		return
	}
	sectionID, err := uuid.Parse(idStr)
	if err != nil {
		h.BadRequest(c, "Invalid section ID")
		return
	}

	var req listMovementsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid list parameters")
		return
	}
	req.Normalize()

	filter := shared.DefaultFilter()
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	if req.MovementType != "" {
		filter.Filters["movement_type"] = req.MovementType
	}

	movements, err := h.movements.FindBySection(c.Request.Context(), sectionID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toMovementResponses(movements))
}

func toMovementResponses(movements []inventory.StockMovement) []MovementResponse {
	responses := make([]MovementResponse, 0, len(movements))
	for i := range movements {
		m := &movements[i]
		responses = append(responses, MovementResponse{
			ID:           m.ID,
			MovementType: string(m.MovementType),
			SourceType:   string(m.SourceType),
			SourceID:     m.SourceID,
			SectionID:    m.SectionID,
			Quantity:     m.Quantity,
			OperatorID:   m.OperatorID,
			OccurredAt:   m.OccurredAt,
		})
	}
	return responses
}
