package warehouse

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/warehouse"
)

// ConditionInput is one requested storage condition
type ConditionInput struct {
	Type string  `json:"type" binding:"required,condition_type"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit"`
}

// CreateSectionRequest creates a new section. A positive ShelfHeight makes
// the section shelved with RowCount shelves; zero makes it a flat section
// with RowCount floor rows.
type CreateSectionRequest struct {
	Name           string           `json:"name" binding:"required"`
	RowCount       int              `json:"row_count" binding:"required,min=1"`
	ShelfHeight    int              `json:"shelf_height" binding:"min=0"`
	MaintenanceFee decimal.Decimal  `json:"maintenance_fee"`
	Conditions     []ConditionInput `json:"conditions" binding:"omitempty,dive"`
}

// SectionResponse represents a section in API responses
type SectionResponse struct {
	ID             uuid.UUID           `json:"id"`
	WarehouseID    uuid.UUID           `json:"warehouse_id"`
	Name           string              `json:"name"`
	Layout         string              `json:"layout"`
	Status         string              `json:"status"`
	CoordinateX    int                 `json:"coordinate_x"`
	CoordinateY    int                 `json:"coordinate_y"`
	TotalSlots     int                 `json:"total_slots"`
	OccupiedSlots  int                 `json:"occupied_slots"`
	MaintenanceFee decimal.Decimal     `json:"maintenance_fee"`
	Conditions     []ConditionResponse `json:"conditions"`
	CreatedAt      time.Time           `json:"created_at"`
}

// ConditionResponse represents a storage condition in API responses
type ConditionResponse struct {
	Type string  `json:"type"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Unit string  `json:"unit"`
}

// WarehouseResponse represents the warehouse capacity summary
type WarehouseResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	TotalSlots     int       `json:"total_slots"`
	UsedSlots      int       `json:"used_slots"`
	AvailableSlots int       `json:"available_slots"`
	SectionCount   int       `json:"section_count"`
}

// ShelfSummary describes one shelf of a shelved section
type ShelfSummary struct {
	ID            uuid.UUID `json:"id"`
	Position      int       `json:"position"`
	TotalSlots    int       `json:"total_slots"`
	OccupiedSlots int       `json:"occupied_slots"`
}

// SlotSummary describes one floor slot of a flat section
type SlotSummary struct {
	ID        uuid.UUID  `json:"id"`
	X         int        `json:"x"`
	Y         int        `json:"y"`
	Occupied  bool       `json:"occupied"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
}

// SectionChildrenResponse carries shelf summaries for shelved sections and
// slot summaries for flat ones
type SectionChildrenResponse struct {
	SectionID uuid.UUID      `json:"section_id"`
	Layout    string         `json:"layout"`
	Shelves   []ShelfSummary `json:"shelves,omitempty"`
	Slots     []SlotSummary  `json:"slots,omitempty"`
}

// ToSectionResponse converts a section to its response form
func ToSectionResponse(section *warehouse.Section) *SectionResponse {
	conditions := make([]ConditionResponse, 0, len(section.Conditions))
	for _, cond := range section.Conditions {
		conditions = append(conditions, ConditionResponse{
			Type: string(cond.Type),
			Min:  cond.Min,
			Max:  cond.Max,
			Unit: cond.Unit,
		})
	}
	return &SectionResponse{
		ID:             section.ID,
		WarehouseID:    section.WarehouseID,
		Name:           section.Name,
		Layout:         string(section.Layout),
		Status:         string(section.Status),
		CoordinateX:    section.CoordinateX,
		CoordinateY:    section.CoordinateY,
		TotalSlots:     section.TotalSlots(),
		OccupiedSlots:  section.OccupiedSlots(),
		MaintenanceFee: section.MaintenanceFee,
		Conditions:     conditions,
		CreatedAt:      section.CreatedAt,
	}
}
