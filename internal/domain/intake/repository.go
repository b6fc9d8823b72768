package intake

import (
	"context"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// LotRepository defines the interface for lot persistence
type LotRepository interface {
	// FindByID finds a lot by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Lot, error)

	// FindByIDWithItems finds a lot with its items loaded
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*Lot, error)

	// FindByCode finds a lot by its unique lot code
	FindByCode(ctx context.Context, lotCode string) (*Lot, error)

	// FindByIDs finds multiple lots by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Lot, error)

	// FindBySupplier finds all lots registered by a supplier
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]Lot, error)

	// FindUnaccepted finds lots still waiting for acceptance
	FindUnaccepted(ctx context.Context, filter shared.Filter) ([]Lot, error)

	// Save creates or updates a lot together with its items
	Save(ctx context.Context, lot *Lot) error

	// SaveWithLock saves with optimistic locking (checks version). The
	// version check is what makes concurrent acceptance at-most-once.
	SaveWithLock(ctx context.Context, lot *Lot) error
}
