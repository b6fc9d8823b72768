package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/dispatch"
	"github.com/wms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDispatchRepository implements DispatchRepository using GORM
type GormDispatchRepository struct {
	db *gorm.DB
}

// NewGormDispatchRepository creates a new GormDispatchRepository
func NewGormDispatchRepository(db *gorm.DB) *GormDispatchRepository {
	return &GormDispatchRepository{db: db}
}

// FindByID finds a dispatch by its ID
func (r *GormDispatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*dispatch.Dispatch, error) {
	var d dispatch.Dispatch
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// FindByIDWithItems finds a dispatch with its items and selections loaded
func (r *GormDispatchRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*dispatch.Dispatch, error) {
	var d dispatch.Dispatch
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Selections").
		First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// FindByBuyer finds all dispatches requested by a buyer
func (r *GormDispatchRepository) FindByBuyer(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]dispatch.Dispatch, error) {
	var dispatches []dispatch.Dispatch
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&dispatch.Dispatch{}).
			Preload("Items").
			Where("buyer_id = ?", buyerID),
		filter,
	)

	if err := query.Find(&dispatches).Error; err != nil {
		return nil, err
	}
	return dispatches, nil
}

// FindByStatus finds dispatches in a given state
func (r *GormDispatchRepository) FindByStatus(ctx context.Context, status dispatch.DispatchStatus, filter shared.Filter) ([]dispatch.Dispatch, error) {
	var dispatches []dispatch.Dispatch
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&dispatch.Dispatch{}).
			Preload("Items").
			Where("status = ?", status),
		filter,
	)

	if err := query.Find(&dispatches).Error; err != nil {
		return nil, err
	}
	return dispatches, nil
}

// Save creates or updates a dispatch together with its items
func (r *GormDispatchRepository) Save(ctx context.Context, d *dispatch.Dispatch) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(d).Error
}

// SaveWithLock saves with optimistic locking (checks version). The version
// check keeps the single transition out of PENDING honest under concurrent
// admin actions.
func (r *GormDispatchRepository) SaveWithLock(ctx context.Context, d *dispatch.Dispatch) error {
	result := r.db.WithContext(ctx).
		Model(d).
		Where("id = ? AND version = ?", d.ID, d.Version-1).
		Updates(map[string]interface{}{
			"status":        d.Status,
			"reject_reason": d.RejectReason,
			"version":       d.Version,
			"updated_at":    d.UpdatedAt,
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
func (r *GormDispatchRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "buyer_id":
			query = query.Where("buyer_id = ?", value)
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
		query = query.Order("created_at DESC")
	}

	return query
}

// Ensure GormDispatchRepository implements DispatchRepository
var _ dispatch.DispatchRepository = (*GormDispatchRepository)(nil)
