package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/warehouse"
	"gorm.io/gorm"
)

// GormSectionRepository implements SectionRepository using GORM
type GormSectionRepository struct {
	db *gorm.DB
}

// NewGormSectionRepository creates a new GormSectionRepository
func NewGormSectionRepository(db *gorm.DB) *GormSectionRepository {
	return &GormSectionRepository{db: db}
}

// FindByID finds a section by its ID
func (r *GormSectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.Section, error) {
	var section warehouse.Section
	if err := r.db.WithContext(ctx).
		Preload("Conditions").
		First(&section, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &section, nil
}

// FindByIDWithSlots finds a section with its full slot grid loaded
func (r *GormSectionRepository) FindByIDWithSlots(ctx context.Context, id uuid.UUID) (*warehouse.Section, error) {
	var section warehouse.Section
	if err := r.preloadSlots(r.db.WithContext(ctx)).
		First(&section, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &section, nil
}

// FindByWarehouse finds all sections of a warehouse
func (r *GormSectionRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]warehouse.Section, error) {
	var sections []warehouse.Section
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&warehouse.Section{}).
			Preload("Conditions").
			Where("warehouse_id = ?", warehouseID),
		filter,
	)

	if err := query.Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// FindByWarehouseWithSlots finds all sections of a warehouse with their
// slot grids loaded, ordered by coordinates
func (r *GormSectionRepository) FindByWarehouseWithSlots(ctx context.Context, warehouseID uuid.UUID) ([]warehouse.Section, error) {
	var sections []warehouse.Section
	if err := r.preloadSlots(r.db.WithContext(ctx)).
		Where("warehouse_id = ?", warehouseID).
		Order("coordinate_x ASC, coordinate_y ASC").
		Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// Save creates or updates a section together with its conditions, shelves
// and slots
func (r *GormSectionRepository) Save(ctx context.Context, section *warehouse.Section) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(section).Error
}

// SaveWithLock saves with optimistic locking (checks version). The slot
// grid is written unconditionally; the section row carries the version
// guard for the whole aggregate.
func (r *GormSectionRepository) SaveWithLock(ctx context.Context, section *warehouse.Section) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(section).
			Where("id = ? AND version = ?", section.ID, section.Version-1).
			Updates(map[string]interface{}{
				"name":       section.Name,
				"status":     section.Status,
				"version":    section.Version,
				"updated_at": section.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		if section.Layout == warehouse.LayoutShelved {
			for i := range section.Shelves {
				shelf := &section.Shelves[i]
				for j := range shelf.Slots {
					if err := tx.Save(&shelf.Slots[j]).Error; err != nil {
						return err
					}
				}
			}
			return nil
		}
		for i := range section.Slots {
			if err := tx.Save(&section.Slots[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes a section and its owned rows
func (r *GormSectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&warehouse.ShelfSlot{}, "section_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&warehouse.Shelf{}, "section_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&warehouse.SectionSlot{}, "section_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&warehouse.StorageCondition{}, "section_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&warehouse.Section{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountOccupiedSlots counts occupied slots of a section with a live query
func (r *GormSectionRepository) CountOccupiedSlots(ctx context.Context, sectionID uuid.UUID) (int64, error) {
	var shelfCount int64
	if err := r.db.WithContext(ctx).
		Model(&warehouse.ShelfSlot{}).
		Where("section_id = ? AND occupied = ?", sectionID, true).
		Count(&shelfCount).Error; err != nil {
		return 0, err
	}

	var flatCount int64
	if err := r.db.WithContext(ctx).
		Model(&warehouse.SectionSlot{}).
		Where("section_id = ? AND occupied = ?", sectionID, true).
		Count(&flatCount).Error; err != nil {
		return 0, err
	}

	return shelfCount + flatCount, nil
}

// preloadSlots attaches the owned association preloads in allocation order
func (r *GormSectionRepository) preloadSlots(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Conditions").
		Preload("Shelves", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Shelves.Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("shelf_position ASC, x ASC, y ASC")
		}).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("x ASC, y ASC")
		})
}

// applyFilter applies filter options to the query
func (r *GormSectionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "layout":
			query = query.Where("layout = ?", value)
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
		query = query.Order("coordinate_x ASC, coordinate_y ASC")
	}

	return query
}

// Ensure GormSectionRepository implements SectionRepository
var _ warehouse.SectionRepository = (*GormSectionRepository)(nil)
