package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/warehouse"
	"gorm.io/gorm"
)

// GormSlotRepository implements SlotRepository using GORM
type GormSlotRepository struct {
	db *gorm.DB
}

// NewGormSlotRepository creates a new GormSlotRepository
func NewGormSlotRepository(db *gorm.DB) *GormSlotRepository {
	return &GormSlotRepository{db: db}
}

// FindShelfSlotByProduct finds the shelf slot bound to a product
func (r *GormSlotRepository) FindShelfSlotByProduct(ctx context.Context, productID uuid.UUID) (*warehouse.ShelfSlot, error) {
	var slot warehouse.ShelfSlot
	if err := r.db.WithContext(ctx).
		First(&slot, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &slot, nil
}

// FindSectionSlotByProduct finds the flat slot bound to a product
func (r *GormSlotRepository) FindSectionSlotByProduct(ctx context.Context, productID uuid.UUID) (*warehouse.SectionSlot, error) {
	var slot warehouse.SectionSlot
	if err := r.db.WithContext(ctx).
		First(&slot, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &slot, nil
}

// SaveShelfSlot updates a single shelf slot
func (r *GormSlotRepository) SaveShelfSlot(ctx context.Context, slot *warehouse.ShelfSlot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

// SaveSectionSlot updates a single flat slot
func (r *GormSlotRepository) SaveSectionSlot(ctx context.Context, slot *warehouse.SectionSlot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

// Ensure GormSlotRepository implements SlotRepository
var _ warehouse.SlotRepository = (*GormSlotRepository)(nil)
