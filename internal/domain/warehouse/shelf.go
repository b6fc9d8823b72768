package warehouse

import (
	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// ShelfWidth is the fixed number of slot positions per grid row.
const ShelfWidth = 6

// Shelf is a numbered rack inside a shelved section. Its slot grid runs
// x in [0, Height) and y in [0, ShelfWidth).
type Shelf struct {
	shared.BaseEntity
	SectionID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Position  int         `gorm:"not null"`
	Height    int         `gorm:"not null"`
	Slots     []ShelfSlot `gorm:"foreignKey:ShelfID"`
}

// TableName returns the table name for GORM
func (Shelf) TableName() string {
	return "shelves"
}

// NewShelf creates a shelf with an empty slot grid of height x ShelfWidth.
func NewShelf(sectionID uuid.UUID, position, height int) (*Shelf, error) {
	if sectionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SECTION", "Section ID cannot be empty")
	}
	if position < 0 {
		return nil, shared.NewDomainError("INVALID_POSITION", "Shelf position cannot be negative")
	}
	if height <= 0 {
		return nil, shared.NewDomainError("INVALID_HEIGHT", "Shelf height must be positive")
	}

	shelf := &Shelf{
		BaseEntity: shared.NewBaseEntity(),
		SectionID:  sectionID,
		Position:   position,
		Height:     height,
	}

	shelf.Slots = make([]ShelfSlot, 0, height*ShelfWidth)
	for x := 0; x < height; x++ {
		for y := 0; y < ShelfWidth; y++ {
			shelf.Slots = append(shelf.Slots, ShelfSlot{
				BaseEntity:    shared.NewBaseEntity(),
				ShelfID:       shelf.ID,
				SectionID:     sectionID,
				ShelfPosition: position,
				X:             x,
				Y:             y,
			})
		}
	}

	return shelf, nil
}

// TotalSlots returns the slot capacity of the shelf
func (s *Shelf) TotalSlots() int {
	return s.Height * ShelfWidth
}

// OccupiedSlots counts slots currently bound to a product
func (s *Shelf) OccupiedSlots() int {
	count := 0
	for i := range s.Slots {
		if s.Slots[i].Occupied {
			count++
		}
	}
	return count
}
