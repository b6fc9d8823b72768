package intake

import (
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeLot = "Lot"

// Event type constants
const (
	EventTypeLotRegistered = "LotRegistered"
	EventTypeLotAccepted   = "LotAccepted"
)

// LotRegisteredEvent is raised when a new intake batch is stored
type LotRegisteredEvent struct {
	shared.BaseDomainEvent
	LotID      uuid.UUID      `json:"lot_id"`
	LotCode    string         `json:"lot_code"`
	SupplierID uuid.UUID      `json:"supplier_id"`
	Rotation   RotationPolicy `json:"rotation"`
	ImportDate time.Time      `json:"import_date"`
}

// NewLotRegisteredEvent creates a new LotRegisteredEvent
func NewLotRegisteredEvent(lot *Lot) *LotRegisteredEvent {
	return &LotRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLotRegistered, AggregateTypeLot, lot.ID),
		LotID:           lot.ID,
		LotCode:         lot.LotCode,
		SupplierID:      lot.SupplierID,
		Rotation:        lot.Rotation,
		ImportDate:      lot.ImportDate,
	}
}

// EventType returns the event type name
func (e *LotRegisteredEvent) EventType() string {
	return EventTypeLotRegistered
}

// LotAcceptedEvent is raised the single time a lot flips to accepted
type LotAcceptedEvent struct {
	shared.BaseDomainEvent
	LotID    uuid.UUID `json:"lot_id"`
	LotCode  string    `json:"lot_code"`
	Quantity int       `json:"quantity"`
}

// NewLotAcceptedEvent creates a new LotAcceptedEvent
func NewLotAcceptedEvent(lot *Lot) *LotAcceptedEvent {
	return &LotAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLotAccepted, AggregateTypeLot, lot.ID),
		LotID:           lot.ID,
		LotCode:         lot.LotCode,
		Quantity:        lot.Quantity(),
	}
}

// EventType returns the event type name
func (e *LotAcceptedEvent) EventType() string {
	return EventTypeLotAccepted
}
