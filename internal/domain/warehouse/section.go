package warehouse

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// LayoutMode describes how a section arranges its slots
type LayoutMode string

const (
	// LayoutShelved sections store goods on numbered shelves
	LayoutShelved LayoutMode = "SHELVED"
	// LayoutFlat sections store goods directly on the floor grid
	LayoutFlat LayoutMode = "FLAT"
)

// IsValid checks if the layout mode is valid
func (m LayoutMode) IsValid() bool {
	return m == LayoutShelved || m == LayoutFlat
}

// SectionStatus represents the lifecycle state of a section
type SectionStatus string

const (
	SectionStatusActive     SectionStatus = "ACTIVE"
	SectionStatusTerminated SectionStatus = "TERMINATED"
)

// Section is a rented floor area inside the warehouse. A section is either
// shelved or flat for its whole lifetime, and owns its storage conditions
// and its slot grid.
type Section struct {
	shared.BaseAggregateRoot
	WarehouseID    uuid.UUID          `gorm:"type:uuid;not null;index;uniqueIndex:idx_sections_coordinate,priority:1"`
	Name           string             `gorm:"not null"`
	Layout         LayoutMode         `gorm:"not null"`
	Status         SectionStatus      `gorm:"not null;default:'ACTIVE'"`
	CoordinateX    int                `gorm:"not null;uniqueIndex:idx_sections_coordinate,priority:2"`
	CoordinateY    int                `gorm:"not null;uniqueIndex:idx_sections_coordinate,priority:3"`
	NumShelves     int                `gorm:"not null;default:0"`
	ShelfHeight    int                `gorm:"not null;default:0"`
	RowCount       int                `gorm:"not null;default:0"`
	MaintenanceFee decimal.Decimal    `gorm:"type:decimal(12,2);not null"`
	Conditions     []StorageCondition `gorm:"foreignKey:SectionID"`
	Shelves        []Shelf            `gorm:"foreignKey:SectionID"`
	Slots          []SectionSlot      `gorm:"foreignKey:SectionID"`
}

// TableName returns the table name for GORM
func (Section) TableName() string {
	return "sections"
}

func newSection(warehouseID uuid.UUID, name string, layout LayoutMode, x, y int, fee decimal.Decimal) (*Section, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Section name cannot be empty")
	}
	if x < 0 || y < 0 {
		return nil, shared.NewDomainError("INVALID_COORDINATE", "Section coordinates cannot be negative")
	}
	if fee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Maintenance fee cannot be negative")
	}
	return &Section{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		WarehouseID:       warehouseID,
		Name:              name,
		Layout:            layout,
		Status:            SectionStatusActive,
		CoordinateX:       x,
		CoordinateY:       y,
		MaintenanceFee:    fee,
	}, nil
}

// NewShelvedSection creates an active shelved section with its full shelf
// grid already built.
func NewShelvedSection(warehouseID uuid.UUID, name string, x, y, numShelves, shelfHeight int, fee decimal.Decimal) (*Section, error) {
	if numShelves <= 0 {
		return nil, shared.NewDomainError("INVALID_SHELF_COUNT", "Shelved section must have at least one shelf")
	}
	if shelfHeight <= 0 {
		return nil, shared.NewDomainError("INVALID_HEIGHT", "Shelf height must be positive")
	}

	section, err := newSection(warehouseID, name, LayoutShelved, x, y, fee)
	if err != nil {
		return nil, err
	}
	section.NumShelves = numShelves
	section.ShelfHeight = shelfHeight

	section.Shelves = make([]Shelf, 0, numShelves)
	for pos := 0; pos < numShelves; pos++ {
		shelf, err := NewShelf(section.ID, pos, shelfHeight)
		if err != nil {
			return nil, err
		}
		section.Shelves = append(section.Shelves, *shelf)
	}

	section.AddDomainEvent(NewSectionCreatedEvent(section))
	return section, nil
}

// NewFlatSection creates an active flat section with its floor grid already
// built. The grid is ShelfWidth columns wide and rowCount rows deep.
func NewFlatSection(warehouseID uuid.UUID, name string, x, y, rowCount int, fee decimal.Decimal) (*Section, error) {
	if rowCount <= 0 {
		return nil, shared.NewDomainError("INVALID_ROW_COUNT", "Flat section must have at least one row")
	}

	section, err := newSection(warehouseID, name, LayoutFlat, x, y, fee)
	if err != nil {
		return nil, err
	}
	section.RowCount = rowCount

	total := ShelfWidth * rowCount
	section.Slots = make([]SectionSlot, 0, total)
	for i := 0; i < total; i++ {
		section.Slots = append(section.Slots, SectionSlot{
			BaseEntity: shared.NewBaseEntity(),
			SectionID:  section.ID,
			X:          i % ShelfWidth,
			Y:          i / ShelfWidth,
		})
	}

	section.AddDomainEvent(NewSectionCreatedEvent(section))
	return section, nil
}

// IsActive reports whether the section accepts new stock
func (s *Section) IsActive() bool {
	return s.Status == SectionStatusActive
}

// TotalSlots returns the slot capacity of the section
func (s *Section) TotalSlots() int {
	if s.Layout == LayoutShelved {
		return s.NumShelves * s.ShelfHeight * ShelfWidth
	}
	return ShelfWidth * s.RowCount
}

// FootprintSlots returns the floor capacity the section charges against the
// warehouse budget: one row of ShelfWidth floor positions per shelf, or the
// full floor grid for a flat section.
func (s *Section) FootprintSlots() int {
	if s.Layout == LayoutShelved {
		return s.NumShelves * ShelfWidth
	}
	return ShelfWidth * s.RowCount
}

// OccupiedSlots counts slots currently bound to a product. Requires the
// slot grid to be loaded.
func (s *Section) OccupiedSlots() int {
	count := 0
	if s.Layout == LayoutShelved {
		for i := range s.Shelves {
			count += s.Shelves[i].OccupiedSlots()
		}
		return count
	}
	for i := range s.Slots {
		if s.Slots[i].Occupied {
			count++
		}
	}
	return count
}

// AvailableSlots returns the number of free slots
func (s *Section) AvailableSlots() int {
	return s.TotalSlots() - s.OccupiedSlots()
}

// AddCondition attaches a storage condition to the section. At most one
// condition per type is kept.
func (s *Section) AddCondition(condition *StorageCondition) error {
	if condition == nil {
		return shared.NewDomainError("INVALID_CONDITION", "Condition cannot be nil")
	}
	for i := range s.Conditions {
		if s.Conditions[i].Type == condition.Type {
			return shared.NewDomainError("DUPLICATE_CONDITION", "Section already has a condition of this type")
		}
	}
	condition.SectionID = s.ID
	s.Conditions = append(s.Conditions, *condition)
	s.Touch()
	return nil
}

// SatisfiesAll checks whether the section meets every given requirement.
// Each requirement must be covered by a matching condition on the section.
func (s *Section) SatisfiesAll(requirements []ConditionRequirement) bool {
	for _, req := range requirements {
		matched := false
		for i := range s.Conditions {
			if s.Conditions[i].Satisfies(req) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// Terminate ends the section lease. A section holding stock cannot be
// terminated.
func (s *Section) Terminate() error {
	if s.Status == SectionStatusTerminated {
		return shared.NewDomainError("ALREADY_TERMINATED", "Section is already terminated")
	}
	if s.OccupiedSlots() > 0 {
		return shared.NewDomainError("SECTION_NOT_EMPTY", "Cannot terminate a section that still holds stock")
	}
	s.Status = SectionStatusTerminated
	s.Touch()
	s.IncrementVersion()
	s.AddDomainEvent(NewSectionTerminatedEvent(s))
	return nil
}

// Activate reopens a terminated section
func (s *Section) Activate() error {
	if s.Status == SectionStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Section is already active")
	}
	s.Status = SectionStatusActive
	s.Touch()
	s.IncrementVersion()
	return nil
}
