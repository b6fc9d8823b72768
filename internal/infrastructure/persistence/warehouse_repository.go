package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/warehouse"
	"gorm.io/gorm"
)

// GormWarehouseRepository implements WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// FindByID finds a warehouse by its ID
func (r *GormWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.Warehouse, error) {
	var wh warehouse.Warehouse
	if err := r.db.WithContext(ctx).First(&wh, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &wh, nil
}

// FindByName finds a warehouse by its unique name
func (r *GormWarehouseRepository) FindByName(ctx context.Context, name string) (*warehouse.Warehouse, error) {
	var wh warehouse.Warehouse
	if err := r.db.WithContext(ctx).First(&wh, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &wh, nil
}

// Save creates or updates a warehouse
func (r *GormWarehouseRepository) Save(ctx context.Context, wh *warehouse.Warehouse) error {
	return r.db.WithContext(ctx).Save(wh).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormWarehouseRepository) SaveWithLock(ctx context.Context, wh *warehouse.Warehouse) error {
	result := r.db.WithContext(ctx).
		Model(wh).
		Where("id = ? AND version = ?", wh.ID, wh.Version-1).
		Updates(map[string]interface{}{
			"name":        wh.Name,
			"total_slots": wh.TotalSlots,
			"used_slots":  wh.UsedSlots,
			"version":     wh.Version,
			"updated_at":  wh.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Ensure GormWarehouseRepository implements WarehouseRepository
var _ warehouse.WarehouseRepository = (*GormWarehouseRepository)(nil)
