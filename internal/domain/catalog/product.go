package catalog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// SlotKind mirrors the two physical slot variants a product can be bound to
type SlotKind string

const (
	SlotKindShelf   SlotKind = "SHELF"
	SlotKindSection SlotKind = "SECTION"
)

// Product is one physical unit in the warehouse. Units are instantiated at
// intake (one row per unit), bound to a slot on lot acceptance, and leave
// through a dispatch.
//
// PendingDispatchID is the soft reservation: it is claimed atomically when a
// retrieval request selects the unit, and cleared if that dispatch is
// rejected. DispatchID is set only when the dispatch is accepted. A unit
// with either field set is not a retrieval candidate.
type Product struct {
	shared.BaseAggregateRoot
	Kind              ProductKind    `gorm:"type:varchar(20);not null;index:idx_products_kind_name"`
	Name              string         `gorm:"type:varchar(200);not null;index:idx_products_kind_name"`
	Details           ProductDetails `gorm:"type:jsonb"`
	LotID             uuid.UUID      `gorm:"type:uuid;not null;index"`
	SectionID         uuid.UUID      `gorm:"type:uuid;not null;index"`
	OnShelf           bool           `gorm:"not null"`
	SlotID            *uuid.UUID     `gorm:"type:uuid"`
	SlotKind          *SlotKind      `gorm:"type:varchar(10)"`
	DispatchID        *uuid.UUID     `gorm:"type:uuid;index"`
	PendingDispatchID *uuid.UUID     `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a physical unit assigned to a section but not yet
// bound to a slot.
func NewProduct(kind ProductKind, name string, details ProductDetails, lotID, sectionID uuid.UUID, onShelf bool) (*Product, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown product kind: "+string(kind))
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if lotID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOT", "Lot ID cannot be empty")
	}
	if sectionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SECTION", "Section ID cannot be empty")
	}
	if kind.IsPerishable() && details.ExpirationDate == nil {
		return nil, shared.NewDomainError("INVALID_DETAIL", "Perishable products require an expiration date")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		Name:              name,
		Details:           details,
		LotID:             lotID,
		SectionID:         sectionID,
		OnShelf:           onShelf,
	}, nil
}

// IsStored reports whether the unit is bound to a slot
func (p *Product) IsStored() bool {
	return p.SlotID != nil
}

// IsAvailable reports whether the unit can be selected for retrieval
func (p *Product) IsAvailable() bool {
	return p.DispatchID == nil && p.PendingDispatchID == nil
}

// BindSlot records the slot the allocation engine assigned
func (p *Product) BindSlot(slotID uuid.UUID, kind SlotKind) error {
	if slotID == uuid.Nil {
		return shared.NewDomainError("INVALID_SLOT", "Slot ID cannot be empty")
	}
	if p.SlotID != nil {
		return shared.NewDomainError("ALREADY_STORED", "Product is already bound to a slot")
	}
	p.SlotID = &slotID
	p.SlotKind = &kind
	p.Touch()
	p.IncrementVersion()
	return nil
}

// UnbindSlot clears the slot binding when the unit physically leaves
func (p *Product) UnbindSlot() {
	p.SlotID = nil
	p.SlotKind = nil
	p.Touch()
	p.IncrementVersion()
}

// IsExpired reports whether the unit is past its expiration date. Only
// perishable kinds ever expire.
func (p *Product) IsExpired(now time.Time) bool {
	if !p.Kind.IsPerishable() || p.Details.ExpirationDate == nil {
		return false
	}
	return now.After(*p.Details.ExpirationDate)
}

// DetailSignature returns the equality key retrieval grouping uses: two
// units with the same signature are interchangeable stock.
func (p *Product) DetailSignature() string {
	encoded, _ := json.Marshal(p.Details)
	return string(p.Kind) + "|" + p.Name + "|" + string(encoded)
}

// MatchesSignature reports whether another unit is interchangeable with
// this one: same kind, same name, field-by-field equal details.
func (p *Product) MatchesSignature(other *Product) bool {
	return p.Kind == other.Kind && p.Name == other.Name && p.Details.Equal(other.Details)
}

// ReserveForDispatch claims the unit for a pending dispatch
func (p *Product) ReserveForDispatch(dispatchID uuid.UUID) error {
	if dispatchID == uuid.Nil {
		return shared.NewDomainError("INVALID_DISPATCH", "Dispatch ID cannot be empty")
	}
	if !p.IsAvailable() {
		return shared.NewDomainError("PRODUCT_RESERVED", "Product is already reserved or dispatched")
	}
	p.PendingDispatchID = &dispatchID
	p.Touch()
	p.IncrementVersion()
	return nil
}

// ReleaseReservation returns the unit to the available pool after its
// dispatch was rejected
func (p *Product) ReleaseReservation() {
	p.PendingDispatchID = nil
	p.Touch()
	p.IncrementVersion()
}

// ConfirmDispatch flips the reservation into a final dispatch binding
func (p *Product) ConfirmDispatch(dispatchID uuid.UUID) error {
	if p.PendingDispatchID == nil || *p.PendingDispatchID != dispatchID {
		return shared.NewDomainError("INVALID_STATE", "Product is not reserved for this dispatch")
	}
	if p.DispatchID != nil {
		return shared.NewDomainError("ALREADY_DISPATCHED", "Product has already been dispatched")
	}
	p.DispatchID = &dispatchID
	p.PendingDispatchID = nil
	p.Touch()
	p.IncrementVersion()
	return nil
}
