package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByLot finds all products belonging to a lot
func (r *GormProductRepository) FindByLot(ctx context.Context, lotID uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("lot_id = ?", lotID).
		Order("created_at ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindUnstoredByLot finds the lot's products that have no slot bound yet
func (r *GormProductRepository) FindUnstoredByLot(ctx context.Context, lotID uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("lot_id = ? AND slot_id IS NULL", lotID).
		Order("created_at ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindAvailableByKindAndName finds retrieval candidates: stored products of
// the given kind and name with no dispatch and no pending reservation.
// Signature equality beyond kind+name is checked by the caller.
func (r *GormProductRepository) FindAvailableByKindAndName(ctx context.Context, kind catalog.ProductKind, name string) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("kind = ? AND name = ?", kind, name).
		Where("slot_id IS NOT NULL").
		Where("dispatch_id IS NULL AND pending_dispatch_id IS NULL").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindExpired finds stored perishable products whose expiration date is
// before the given instant and that are not reserved or dispatched.
// The expiration date lives inside the details document, so the cutoff is
// applied in memory after narrowing the scan to perishable kinds.
func (r *GormProductRepository) FindExpired(ctx context.Context, before time.Time) ([]catalog.Product, error) {
	perishable := make([]catalog.ProductKind, 0)
	for _, kind := range catalog.AllKinds() {
		if kind.IsPerishable() {
			perishable = append(perishable, kind)
		}
	}

	var candidates []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("kind IN ?", perishable).
		Where("slot_id IS NOT NULL").
		Where("dispatch_id IS NULL AND pending_dispatch_id IS NULL").
		Find(&candidates).Error; err != nil {
		return nil, err
	}

	expired := make([]catalog.Product, 0)
	for i := range candidates {
		if candidates[i].IsExpired(before) {
			expired = append(expired, candidates[i])
		}
	}
	return expired, nil
}

// FindBySection finds all products assigned to a section
func (r *GormProductRepository) FindBySection(ctx context.Context, sectionID uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("section_id = ?", sectionID).
		Order("created_at ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// SaveAll persists a batch of products in one transaction
func (r *GormProductRepository) SaveAll(ctx context.Context, products []*catalog.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, product := range products {
			if err := tx.Save(product).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	result := r.db.WithContext(ctx).
		Model(product).
		Where("id = ? AND version = ?", product.ID, product.Version-1).
		Updates(map[string]interface{}{
			"slot_id":             product.SlotID,
			"slot_kind":           product.SlotKind,
			"dispatch_id":         product.DispatchID,
			"pending_dispatch_id": product.PendingDispatchID,
			"version":             product.Version,
			"updated_at":          product.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// ReserveForDispatch atomically claims the given products for a pending
// dispatch. The conditional UPDATE only touches rows that are still
// unreserved and undispatched; the returned row count lets the caller
// detect a lost race and roll back.
func (r *GormProductRepository) ReserveForDispatch(ctx context.Context, productIDs []uuid.UUID, dispatchID uuid.UUID) (int64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id IN ?", productIDs).
		Where("dispatch_id IS NULL AND pending_dispatch_id IS NULL").
		Updates(map[string]interface{}{
			"pending_dispatch_id": dispatchID,
			"updated_at":          time.Now(),
		})

	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ReleaseReservation clears the pending reservation of every product
// claimed by the given dispatch
func (r *GormProductRepository) ReleaseReservation(ctx context.Context, dispatchID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("pending_dispatch_id = ?", dispatchID).
		Updates(map[string]interface{}{
			"pending_dispatch_id": nil,
			"updated_at":          time.Now(),
		}).Error
}

// FindByPendingDispatch finds the products reserved for a dispatch
func (r *GormProductRepository) FindByPendingDispatch(ctx context.Context, dispatchID uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("pending_dispatch_id = ?", dispatchID).
		Order("created_at ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
