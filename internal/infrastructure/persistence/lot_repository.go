package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/intake"
	"github.com/wms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormLotRepository implements LotRepository using GORM
type GormLotRepository struct {
	db *gorm.DB
}

// NewGormLotRepository creates a new GormLotRepository
func NewGormLotRepository(db *gorm.DB) *GormLotRepository {
	return &GormLotRepository{db: db}
}

// FindByID finds a lot by its ID
func (r *GormLotRepository) FindByID(ctx context.Context, id uuid.UUID) (*intake.Lot, error) {
	var lot intake.Lot
	if err := r.db.WithContext(ctx).First(&lot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// FindByIDWithItems finds a lot with its items loaded
func (r *GormLotRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*intake.Lot, error) {
	var lot intake.Lot
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&lot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// FindByCode finds a lot by its unique lot code
func (r *GormLotRepository) FindByCode(ctx context.Context, lotCode string) (*intake.Lot, error) {
	var lot intake.Lot
	if err := r.db.WithContext(ctx).First(&lot, "lot_code = ?", lotCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// FindByIDs finds multiple lots by their IDs
func (r *GormLotRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]intake.Lot, error) {
	if len(ids) == 0 {
		return []intake.Lot{}, nil
	}

	var lots []intake.Lot
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// FindBySupplier finds all lots registered by a supplier
func (r *GormLotRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]intake.Lot, error) {
	var lots []intake.Lot
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&intake.Lot{}).
			Where("supplier_id = ?", supplierID),
		filter,
	)

	if err := query.Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// FindUnaccepted finds lots still waiting for acceptance
func (r *GormLotRepository) FindUnaccepted(ctx context.Context, filter shared.Filter) ([]intake.Lot, error) {
	var lots []intake.Lot
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&intake.Lot{}).
			Preload("Items").
			Where("accepted = ?", false),
		filter,
	)

	if err := query.Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// Save creates or updates a lot together with its items
func (r *GormLotRepository) Save(ctx context.Context, lot *intake.Lot) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(lot).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormLotRepository) SaveWithLock(ctx context.Context, lot *intake.Lot) error {
	result := r.db.WithContext(ctx).
		Model(lot).
		Where("id = ? AND version = ?", lot.ID, lot.Version-1).
		Updates(map[string]interface{}{
			"accepted":   lot.Accepted,
			"version":    lot.Version,
			"updated_at": lot.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormLotRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("lot_code ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "rotation":
			query = query.Where("rotation = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("import_date ASC, created_at ASC")
	}

	return query
}

// Ensure GormLotRepository implements LotRepository
var _ intake.LotRepository = (*GormLotRepository)(nil)
