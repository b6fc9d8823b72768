package warehouse

import (
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// SectionPlanner is a domain service that places new sections on the
// warehouse floor. It checks the warehouse slot budget, assigns the first
// free coordinate, builds the section with its full slot grid, and reserves
// the section's capacity on the warehouse.
//
// The floor plan is two columns wide: coordinates run x in {0, 1} and
// y in [0, coordinateRows). Coordinates of terminated sections stay taken
// until the section row is removed, so floor space is never double-booked.
type SectionPlanner struct {
	coordinateRows int
}

// NewSectionPlanner creates a section planner with the given number of
// floor rows per column.
func NewSectionPlanner(coordinateRows int) *SectionPlanner {
	if coordinateRows <= 0 {
		coordinateRows = 100
	}
	return &SectionPlanner{coordinateRows: coordinateRows}
}

// PlanSectionRequest describes a section to be placed
type PlanSectionRequest struct {
	Name           string
	Layout         LayoutMode
	NumShelves     int
	ShelfHeight    int
	RowCount       int
	MaintenanceFee decimal.Decimal
	Conditions     []ConditionRequirement
}

// Validate validates the plan request
func (r *PlanSectionRequest) Validate() error {
	if r.Name == "" {
		return shared.NewDomainError("INVALID_NAME", "Section name cannot be empty")
	}
	if !r.Layout.IsValid() {
		return shared.NewDomainError("INVALID_LAYOUT", "Layout must be SHELVED or FLAT")
	}
	switch r.Layout {
	case LayoutShelved:
		if r.NumShelves <= 0 || r.ShelfHeight <= 0 {
			return shared.NewDomainError("INVALID_DIMENSIONS", "Shelved section requires positive shelf count and height")
		}
	case LayoutFlat:
		if r.RowCount <= 0 {
			return shared.NewDomainError("INVALID_DIMENSIONS", "Flat section requires a positive row count")
		}
	}
	for _, cond := range r.Conditions {
		if err := cond.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// RequiredSlots returns the floor capacity the section charges against the
// warehouse budget. Shelved sections charge one floor row per shelf, not
// the full shelf-slot count.
func (r *PlanSectionRequest) RequiredSlots() int {
	if r.Layout == LayoutShelved {
		return r.NumShelves * ShelfWidth
	}
	return ShelfWidth * r.RowCount
}

// PlanSection places a new section. It mutates the warehouse aggregate by
// reserving the section's slot capacity; the caller persists both.
func (p *SectionPlanner) PlanSection(wh *Warehouse, existing []Section, req PlanSectionRequest) (*Section, error) {
	if wh == nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	required := req.RequiredSlots()
	if !wh.HasAvailableSlots(required) {
		return nil, shared.ErrCapacityExceeded
	}

	x, y, err := p.nextFreeCoordinate(existing)
	if err != nil {
		return nil, err
	}

	var section *Section
	switch req.Layout {
	case LayoutShelved:
		section, err = NewShelvedSection(wh.ID, req.Name, x, y, req.NumShelves, req.ShelfHeight, req.MaintenanceFee)
	case LayoutFlat:
		section, err = NewFlatSection(wh.ID, req.Name, x, y, req.RowCount, req.MaintenanceFee)
	}
	if err != nil {
		return nil, err
	}

	for _, cond := range req.Conditions {
		sc, err := NewStorageCondition(section.ID, cond)
		if err != nil {
			return nil, err
		}
		if err := section.AddCondition(sc); err != nil {
			return nil, err
		}
	}

	if err := wh.ReserveSlots(required); err != nil {
		return nil, err
	}

	return section, nil
}

// nextFreeCoordinate scans column by column for the first coordinate not
// taken by an existing section.
func (p *SectionPlanner) nextFreeCoordinate(existing []Section) (int, int, error) {
	taken := make(map[[2]int]bool, len(existing))
	for i := range existing {
		taken[[2]int{existing[i].CoordinateX, existing[i].CoordinateY}] = true
	}
	for x := 0; x <= 1; x++ {
		for y := 0; y < p.coordinateRows; y++ {
			if !taken[[2]int{x, y}] {
				return x, y, nil
			}
		}
	}
	return 0, 0, shared.ErrNoFreeCoordinate
}
