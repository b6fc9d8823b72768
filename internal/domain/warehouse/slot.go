package warehouse

import (
	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// SlotKind distinguishes the two physical slot variants
type SlotKind string

const (
	// SlotKindShelf is a slot inside a shelf grid of a shelved section
	SlotKindShelf SlotKind = "SHELF"
	// SlotKindSection is a flat floor slot of a flat section
	SlotKindSection SlotKind = "SECTION"
)

// Slot is the contract shared by both slot variants. A slot's occupied flag
// and its product reference always change together.
type Slot interface {
	shared.Entity
	Kind() SlotKind
	IsAvailable() bool
	BoundProduct() *uuid.UUID
	Occupy(productID uuid.UUID) error
	Vacate() error
}

// ShelfSlot is an atomic storage location inside a shelf grid.
// SectionID and ShelfPosition are denormalized for allocation-order queries.
type ShelfSlot struct {
	shared.BaseEntity
	ShelfID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	SectionID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ShelfPosition int        `gorm:"not null"`
	X             int        `gorm:"not null"`
	Y             int        `gorm:"not null"`
	Occupied      bool       `gorm:"not null;default:false"`
	ProductID     *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
}

// TableName returns the table name for GORM
func (ShelfSlot) TableName() string {
	return "shelf_slots"
}

// Kind returns the slot variant
func (s *ShelfSlot) Kind() SlotKind {
	return SlotKindShelf
}

// IsAvailable reports whether the slot is free
func (s *ShelfSlot) IsAvailable() bool {
	return !s.Occupied
}

// BoundProduct returns the bound product id, if any
func (s *ShelfSlot) BoundProduct() *uuid.UUID {
	return s.ProductID
}

// Occupy binds a product to the slot. The flag and the reference flip as one.
func (s *ShelfSlot) Occupy(productID uuid.UUID) error {
	if s.Occupied || s.ProductID != nil {
		return shared.NewDomainError("SLOT_OCCUPIED", "Slot is already occupied")
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	s.Occupied = true
	s.ProductID = &productID
	s.Touch()
	return nil
}

// Vacate frees the slot
func (s *ShelfSlot) Vacate() error {
	if !s.Occupied {
		return shared.NewDomainError("SLOT_NOT_OCCUPIED", "Slot is not occupied")
	}
	s.Occupied = false
	s.ProductID = nil
	s.Touch()
	return nil
}

// SectionSlot is an atomic storage location on a flat section floor.
type SectionSlot struct {
	shared.BaseEntity
	SectionID uuid.UUID  `gorm:"type:uuid;not null;index"`
	X         int        `gorm:"not null"`
	Y         int        `gorm:"not null"`
	Occupied  bool       `gorm:"not null;default:false"`
	ProductID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
}

// TableName returns the table name for GORM
func (SectionSlot) TableName() string {
	return "section_slots"
}

// Kind returns the slot variant
func (s *SectionSlot) Kind() SlotKind {
	return SlotKindSection
}

// IsAvailable reports whether the slot is free
func (s *SectionSlot) IsAvailable() bool {
	return !s.Occupied
}

// BoundProduct returns the bound product id, if any
func (s *SectionSlot) BoundProduct() *uuid.UUID {
	return s.ProductID
}

// Occupy binds a product to the slot. The flag and the reference flip as one.
func (s *SectionSlot) Occupy(productID uuid.UUID) error {
	if s.Occupied || s.ProductID != nil {
		return shared.NewDomainError("SLOT_OCCUPIED", "Slot is already occupied")
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	s.Occupied = true
	s.ProductID = &productID
	s.Touch()
	return nil
}

// Vacate frees the slot
func (s *SectionSlot) Vacate() error {
	if !s.Occupied {
		return shared.NewDomainError("SLOT_NOT_OCCUPIED", "Slot is not occupied")
	}
	s.Occupied = false
	s.ProductID = nil
	s.Touch()
	return nil
}

// Ensure both variants implement the Slot contract
var (
	_ Slot = (*ShelfSlot)(nil)
	_ Slot = (*SectionSlot)(nil)
)
