package persistence

import (
	"context"

	appdispatch "github.com/wms/backend/internal/application/dispatch"
	appintake "github.com/wms/backend/internal/application/intake"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/dispatch"
	"github.com/wms/backend/internal/domain/intake"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/warehouse"
	"gorm.io/gorm"
)

// GormTransactionScope implements the intake and dispatch transaction
// scopes using GORM transactions. Every repository handed to the callback
// is bound to the same transaction, so a failed step rolls back the whole
// intake or retrieval flow.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appintake.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// ForDispatch adapts the scope to the retrieval side, which needs the
// dispatch repository in addition to the intake set.
func (s *GormTransactionScope) ForDispatch() *GormDispatchTransactionScope {
	return &GormDispatchTransactionScope{db: s.db}
}

// GormDispatchTransactionScope is the retrieval-side transaction scope.
type GormDispatchTransactionScope struct {
	db *gorm.DB
}

// NewGormDispatchTransactionScope creates a new GormDispatchTransactionScope.
func NewGormDispatchTransactionScope(db *gorm.DB) *GormDispatchTransactionScope {
	return &GormDispatchTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
func (s *GormDispatchTransactionScope) Execute(ctx context.Context, fn func(repos appdispatch.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to all repositories within
// one transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// LotRepo returns the lot repository scoped to the current transaction.
func (r *gormTransactionalRepositories) LotRepo() intake.LotRepository {
	return NewGormLotRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// SectionRepo returns the section repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SectionRepo() warehouse.SectionRepository {
	return NewGormSectionRepository(r.tx)
}

// MovementRepo returns the stock movement repository scoped to the current transaction.
func (r *gormTransactionalRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// DispatchRepo returns the dispatch repository scoped to the current transaction.
func (r *gormTransactionalRepositories) DispatchRepo() dispatch.DispatchRepository {
	return NewGormDispatchRepository(r.tx)
}

// Ensure the scopes implement their application contracts
var (
	_ appintake.TransactionScope            = (*GormTransactionScope)(nil)
	_ appdispatch.TransactionScope          = (*GormDispatchTransactionScope)(nil)
	_ appintake.TransactionalRepositories   = (*gormTransactionalRepositories)(nil)
	_ appdispatch.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
