package dispatch

import (
	"context"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// DispatchRepository defines the interface for dispatch persistence
type DispatchRepository interface {
	// FindByID finds a dispatch by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Dispatch, error)

	// FindByIDWithItems finds a dispatch with its items and selections loaded
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*Dispatch, error)

	// FindByBuyer finds all dispatches requested by a buyer
	FindByBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]Dispatch, error)

	// FindByStatus finds dispatches in a given state
	FindByStatus(ctx context.Context, status DispatchStatus, filter shared.Filter) ([]Dispatch, error)

	// Save creates or updates a dispatch together with its items
	Save(ctx context.Context, d *Dispatch) error

	// SaveWithLock saves with optimistic locking (checks version). The
	// version check keeps the single transition out of PENDING honest
	// under concurrent admin actions.
	SaveWithLock(ctx context.Context, d *Dispatch) error
}
