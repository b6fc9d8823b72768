package intake

import (
	"context"

	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/intake"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/warehouse"
)

// TransactionScope provides transactional access to the repositories intake
// operations touch. Everything executed inside one scope commits or rolls
// back atomically; the per-section serialization the allocation engine
// needs comes from running the whole accept path in one transaction with
// optimistic section versions.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories bound to one transaction
type TransactionalRepositories interface {
	// LotRepo returns the lot repository scoped to the current transaction
	LotRepo() intake.LotRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// SectionRepo returns the section repository scoped to the current transaction
	SectionRepo() warehouse.SectionRepository
	// MovementRepo returns the stock movement repository scoped to the current transaction
	MovementRepo() inventory.StockMovementRepository
}

// NoOpTransactionScope runs the function without a real transaction. Used
// in tests.
type NoOpTransactionScope struct {
	lotRepo      intake.LotRepository
	productRepo  catalog.ProductRepository
	sectionRepo  warehouse.SectionRepository
	movementRepo inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	lotRepo intake.LotRepository,
	productRepo catalog.ProductRepository,
	sectionRepo warehouse.SectionRepository,
	movementRepo inventory.StockMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		lotRepo:      lotRepo,
		productRepo:  productRepo,
		sectionRepo:  sectionRepo,
		movementRepo: movementRepo,
	}
}

// Execute runs fn directly against the wrapped repositories
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// LotRepo returns the lot repository
func (s *NoOpTransactionScope) LotRepo() intake.LotRepository { return s.lotRepo }

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// SectionRepo returns the section repository
func (s *NoOpTransactionScope) SectionRepo() warehouse.SectionRepository { return s.sectionRepo }

// MovementRepo returns the stock movement repository
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}
