package dispatch

import (
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/dispatch"
)

// RetrieveLineInput is one requested line: a reference product and how many
// interchangeable units to retrieve
type RetrieveLineInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateRetrieveRequest asks for an outbound dispatch
type CreateRetrieveRequest struct {
	RequesterID uuid.UUID           `json:"requester_id" binding:"required"`
	Lines       []RetrieveLineInput `json:"lines" binding:"required,min=1,dive"`
}

// RejectDispatchRequest carries the rejection reason
type RejectDispatchRequest struct {
	Reason string `json:"reason"`
}

// DispatchItemResponse represents one fulfilled line
type DispatchItemResponse struct {
	ID          uuid.UUID   `json:"id"`
	ProductName string      `json:"product_name"`
	Quantity    int         `json:"quantity"`
	ExportDate  time.Time   `json:"export_date"`
	ProductIDs  []uuid.UUID `json:"product_ids"`
}

// DispatchResponse represents a dispatch in API responses
type DispatchResponse struct {
	ID           uuid.UUID              `json:"id"`
	BuyerID      uuid.UUID              `json:"buyer_id"`
	Status       string                 `json:"status"`
	RejectReason string                 `json:"reject_reason,omitempty"`
	Items        []DispatchItemResponse `json:"items"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// ToDispatchResponse converts a dispatch to its response form
func ToDispatchResponse(d *dispatch.Dispatch) *DispatchResponse {
	items := make([]DispatchItemResponse, 0, len(d.Items))
	for i := range d.Items {
		item := &d.Items[i]
		productIDs := make([]uuid.UUID, 0, len(item.Selections))
		for j := range item.Selections {
			productIDs = append(productIDs, item.Selections[j].ProductID)
		}
		items = append(items, DispatchItemResponse{
			ID:          item.ID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			ExportDate:  item.ExportDate,
			ProductIDs:  productIDs,
		})
	}
	return &DispatchResponse{
		ID:           d.ID,
		BuyerID:      d.BuyerID,
		Status:       string(d.Status),
		RejectReason: d.RejectReason,
		Items:        items,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
