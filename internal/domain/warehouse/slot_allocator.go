package warehouse

import (
	"sort"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// SlotAllocator is a domain service that binds products to slots using
// first-fit position order. Shelved sections are scanned by
// (shelf position, x, y) ascending, flat sections by (x, y) ascending.
// Both layouts raise the same exhaustion error.
type SlotAllocator struct{}

// NewSlotAllocator creates a slot allocator
func NewSlotAllocator() *SlotAllocator {
	return &SlotAllocator{}
}

// AllocateSlot binds the given product to the first free slot of the
// section. The section's slot grid must be loaded. The chosen slot is
// mutated in place and a SlotBound event is recorded on the section.
func (a *SlotAllocator) AllocateSlot(section *Section, productID uuid.UUID) (Slot, error) {
	if section == nil {
		return nil, shared.NewDomainError("INVALID_SECTION", "Section cannot be nil")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !section.IsActive() {
		return nil, shared.NewDomainError("SECTION_TERMINATED", "Cannot allocate slots in a terminated section")
	}

	if section.Layout == LayoutShelved {
		return a.allocateShelfSlot(section, productID)
	}
	return a.allocateSectionSlot(section, productID)
}

func (a *SlotAllocator) allocateShelfSlot(section *Section, productID uuid.UUID) (Slot, error) {
	candidates := make([]*ShelfSlot, 0)
	for i := range section.Shelves {
		shelf := &section.Shelves[i]
		for j := range shelf.Slots {
			slot := &shelf.Slots[j]
			if slot.IsAvailable() && slot.ProductID == nil {
				candidates = append(candidates, slot)
			}
		}
	}
	if len(candidates) == 0 {
		return nil, shared.ErrNoAvailableSlot
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.ShelfPosition != b.ShelfPosition {
			return a.ShelfPosition < b.ShelfPosition
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})

	chosen := candidates[0]
	if err := chosen.Occupy(productID); err != nil {
		return nil, err
	}
	section.AddDomainEvent(NewSlotBoundEvent(section.ID, chosen, productID, chosen.X, chosen.Y))
	return chosen, nil
}

func (a *SlotAllocator) allocateSectionSlot(section *Section, productID uuid.UUID) (Slot, error) {
	candidates := make([]*SectionSlot, 0)
	for i := range section.Slots {
		slot := &section.Slots[i]
		if slot.IsAvailable() && slot.ProductID == nil {
			candidates = append(candidates, slot)
		}
	}
	if len(candidates) == 0 {
		return nil, shared.ErrNoAvailableSlot
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})

	chosen := candidates[0]
	if err := chosen.Occupy(productID); err != nil {
		return nil, err
	}
	section.AddDomainEvent(NewSlotBoundEvent(section.ID, chosen, productID, chosen.X, chosen.Y))
	return chosen, nil
}

// ReleaseSlot vacates the slot currently bound to the given product and
// records a SlotReleased event. Used when a dispatch is accepted and the
// unit physically leaves the section.
func (a *SlotAllocator) ReleaseSlot(section *Section, productID uuid.UUID) (Slot, error) {
	if section == nil {
		return nil, shared.NewDomainError("INVALID_SECTION", "Section cannot be nil")
	}

	var bound Slot
	if section.Layout == LayoutShelved {
		for i := range section.Shelves {
			shelf := &section.Shelves[i]
			for j := range shelf.Slots {
				slot := &shelf.Slots[j]
				if slot.ProductID != nil && *slot.ProductID == productID {
					bound = slot
					break
				}
			}
		}
	} else {
		for i := range section.Slots {
			slot := &section.Slots[i]
			if slot.ProductID != nil && *slot.ProductID == productID {
				bound = slot
				break
			}
		}
	}
	if bound == nil {
		return nil, shared.NewDomainError("SLOT_NOT_FOUND", "No slot bound to this product in the section")
	}

	if err := bound.Vacate(); err != nil {
		return nil, err
	}
	section.AddDomainEvent(NewSlotReleasedEvent(section.ID, bound, productID))
	return bound, nil
}
