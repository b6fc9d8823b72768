package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByLot finds all products belonging to a lot
	FindByLot(ctx context.Context, lotID uuid.UUID) ([]Product, error)

	// FindUnstoredByLot finds the lot's products that have no slot bound yet
	FindUnstoredByLot(ctx context.Context, lotID uuid.UUID) ([]Product, error)

	// FindAvailableByKindAndName finds retrieval candidates: products of the
	// given kind and name with no dispatch and no pending reservation.
	// Signature equality beyond kind+name is checked by the caller.
	FindAvailableByKindAndName(ctx context.Context, kind ProductKind, name string) ([]Product, error)

	// FindExpired finds stored perishable products whose expiration date is
	// before the given instant and that are not reserved or dispatched
	FindExpired(ctx context.Context, before time.Time) ([]Product, error)

	// FindBySection finds all products assigned to a section
	FindBySection(ctx context.Context, sectionID uuid.UUID) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveAll persists a batch of products in one transaction
	SaveAll(ctx context.Context, products []*Product) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, product *Product) error

	// ReserveForDispatch atomically claims the given products for a pending
	// dispatch. The claim only touches rows that are still unreserved and
	// undispatched; it returns the number of rows claimed so the caller can
	// detect a lost race and roll back.
	ReserveForDispatch(ctx context.Context, productIDs []uuid.UUID, dispatchID uuid.UUID) (int64, error)

	// ReleaseReservation clears the pending reservation of every product
	// claimed by the given dispatch
	ReleaseReservation(ctx context.Context, dispatchID uuid.UUID) error

	// FindByPendingDispatch finds the products reserved for a dispatch
	FindByPendingDispatch(ctx context.Context, dispatchID uuid.UUID) ([]Product, error)
}
