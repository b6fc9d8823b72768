package warehouse

import (
	"fmt"

	"github.com/wms/backend/internal/domain/shared"
)

// Warehouse is the top-level capacity pool. It tracks the total number of
// physical slots across all sections and how many of them are currently
// committed to sections.
type Warehouse struct {
	shared.BaseAggregateRoot
	Name       string `gorm:"type:varchar(200);not null"`
	TotalSlots int    `gorm:"not null"`
	UsedSlots  int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse with the given slot capacity
func NewWarehouse(name string, totalSlots int) (*Warehouse, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}
	if totalSlots <= 0 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Warehouse capacity must be positive")
	}

	return &Warehouse{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		TotalSlots:        totalSlots,
		UsedSlots:         0,
	}, nil
}

// HasAvailableSlots reports whether n more slots can be committed
func (w *Warehouse) HasAvailableSlots(n int) bool {
	return w.TotalSlots-w.UsedSlots >= n
}

// AvailableSlots returns the number of uncommitted slots
func (w *Warehouse) AvailableSlots() int {
	return w.TotalSlots - w.UsedSlots
}

// ReserveSlots commits n slots to a section. It is the only way the used
// counter may grow; the invariant UsedSlots <= TotalSlots always holds.
func (w *Warehouse) ReserveSlots(n int) error {
	if n <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Slot count must be positive")
	}
	if !w.HasAvailableSlots(n) {
		return shared.NewDomainError("CAPACITY_EXCEEDED",
			fmt.Sprintf("Warehouse has %d free slots, %d requested", w.AvailableSlots(), n))
	}

	w.UsedSlots += n
	w.Touch()
	w.IncrementVersion()

	return nil
}

// ReleaseSlots returns n slots to the pool (section termination)
func (w *Warehouse) ReleaseSlots(n int) error {
	if n <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Slot count must be positive")
	}
	if n > w.UsedSlots {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot release %d slots, only %d are in use", n, w.UsedSlots))
	}

	w.UsedSlots -= n
	w.Touch()
	w.IncrementVersion()

	return nil
}
