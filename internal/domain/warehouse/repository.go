package warehouse

import (
	"context"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// WarehouseRepository defines the interface for warehouse persistence
type WarehouseRepository interface {
	// FindByID finds a warehouse by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)

	// FindByName finds a warehouse by its unique name
	FindByName(ctx context.Context, name string) (*Warehouse, error)

	// Save creates or updates a warehouse
	Save(ctx context.Context, wh *Warehouse) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, wh *Warehouse) error
}

// SectionRepository defines the interface for section persistence
type SectionRepository interface {
	// FindByID finds a section by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Section, error)

	// FindByIDWithSlots finds a section with its full slot grid loaded
	FindByIDWithSlots(ctx context.Context, id uuid.UUID) (*Section, error)

	// FindByWarehouse finds all sections of a warehouse
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]Section, error)

	// FindByWarehouseWithSlots finds all sections of a warehouse with their
	// slot grids loaded, ordered by coordinates
	FindByWarehouseWithSlots(ctx context.Context, warehouseID uuid.UUID) ([]Section, error)

	// Save creates or updates a section together with its conditions,
	// shelves and slots
	Save(ctx context.Context, section *Section) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, section *Section) error

	// Delete deletes a section and its owned rows
	Delete(ctx context.Context, id uuid.UUID) error

	// CountOccupiedSlots counts occupied slots of a section with a live query
	CountOccupiedSlots(ctx context.Context, sectionID uuid.UUID) (int64, error)
}

// SlotRepository defines lookups that cut across slot variants
type SlotRepository interface {
	// FindShelfSlotByProduct finds the shelf slot bound to a product
	FindShelfSlotByProduct(ctx context.Context, productID uuid.UUID) (*ShelfSlot, error)

	// FindSectionSlotByProduct finds the flat slot bound to a product
	FindSectionSlotByProduct(ctx context.Context, productID uuid.UUID) (*SectionSlot, error)

	// SaveShelfSlot updates a single shelf slot
	SaveShelfSlot(ctx context.Context, slot *ShelfSlot) error

	// SaveSectionSlot updates a single flat slot
	SaveSectionSlot(ctx context.Context, slot *SectionSlot) error
}
