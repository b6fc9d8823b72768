package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// MovementType distinguishes goods entering and leaving the warehouse
type MovementType string

const (
	MovementImport MovementType = "IMPORT"
	MovementExport MovementType = "EXPORT"
)

// IsValid checks if the movement type is valid
func (t MovementType) IsValid() bool {
	return t == MovementImport || t == MovementExport
}

// SourceType identifies the document a movement was recorded from
type SourceType string

const (
	SourceLot      SourceType = "LOT"
	SourceDispatch SourceType = "DISPATCH"
)

// StockMovement is one immutable audit record: an accepted lot writes an
// IMPORT row, an accepted dispatch writes an EXPORT row. Movements are
// never updated or deleted.
type StockMovement struct {
	shared.BaseEntity
	MovementType MovementType `gorm:"type:varchar(10);not null;index"`
	SourceType   SourceType   `gorm:"type:varchar(10);not null;index:idx_movements_source"`
	SourceID     uuid.UUID    `gorm:"type:uuid;not null;index:idx_movements_source"`
	SectionID    uuid.UUID    `gorm:"type:uuid;not null;index"`
	Quantity     int          `gorm:"not null"`
	OperatorID   uuid.UUID    `gorm:"type:uuid;not null"`
	OccurredAt   time.Time    `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement records one movement
func NewStockMovement(movementType MovementType, sourceType SourceType, sourceID, sectionID, operatorID uuid.UUID, quantity int) (*StockMovement, error) {
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT", "Unknown movement type: "+string(movementType))
	}
	if sourceType != SourceLot && sourceType != SourceDispatch {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Unknown source type: "+string(sourceType))
	}
	if sourceID == uuid.Nil || sectionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Source and section IDs cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity must be positive")
	}

	return &StockMovement{
		BaseEntity:   shared.NewBaseEntity(),
		MovementType: movementType,
		SourceType:   sourceType,
		SourceID:     sourceID,
		SectionID:    sectionID,
		Quantity:     quantity,
		OperatorID:   operatorID,
		OccurredAt:   time.Now(),
	}, nil
}
