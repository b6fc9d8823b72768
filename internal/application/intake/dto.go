package intake

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/intake"
)

// BatchItemInput is one line of an intake batch: a number of identical
// units and where they prefer to be stored
type BatchItemInput struct {
	Name     string                 `json:"name" binding:"required"`
	OnShelf  bool                   `json:"on_shelf"`
	Quantity int                    `json:"quantity" binding:"required,min=1"`
	Details  map[string]interface{} `json:"details"`
}

// StoreBatchRequest registers a new intake batch as an unaccepted lot
type StoreBatchRequest struct {
	SupplierID uuid.UUID        `json:"supplier_id" binding:"required"`
	Kind       string           `json:"kind" binding:"required,product_kind"`
	Rotation   string           `json:"rotation" binding:"required,rotation_policy"`
	LotCode    string           `json:"lot_code"`
	Price      *decimal.Decimal `json:"price"`
	Conditions []ConditionInput `json:"conditions" binding:"omitempty,dive"`
	Items      []BatchItemInput `json:"items" binding:"required,min=1,dive"`
}

// ConditionInput is one storage condition the batch requires
type ConditionInput struct {
	Type string  `json:"type" binding:"required,condition_type"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit"`
}

// LotResponse represents a lot in API responses
type LotResponse struct {
	ID         uuid.UUID        `json:"id"`
	LotCode    string           `json:"lot_code"`
	ImportDate time.Time        `json:"import_date"`
	Accepted   bool             `json:"accepted"`
	SupplierID uuid.UUID        `json:"supplier_id"`
	Rotation   string           `json:"rotation"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	Quantity   int              `json:"quantity"`
	CreatedAt  time.Time        `json:"created_at"`
}

// AcceptLotResponse reports the outcome of an acceptance call
type AcceptLotResponse struct {
	LotID    uuid.UUID `json:"lot_id"`
	Accepted bool      `json:"accepted"`
}

// ToLotResponse converts a lot to its response form
func ToLotResponse(lot *intake.Lot) *LotResponse {
	return &LotResponse{
		ID:         lot.ID,
		LotCode:    lot.LotCode,
		ImportDate: lot.ImportDate,
		Accepted:   lot.Accepted,
		SupplierID: lot.SupplierID,
		Rotation:   lot.Rotation.String(),
		Price:      lot.Price,
		Quantity:   lot.Quantity(),
		CreatedAt:  lot.CreatedAt,
	}
}
