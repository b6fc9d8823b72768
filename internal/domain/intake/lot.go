package intake

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// Lot is one intake batch: everything a supplier delivered in a single
// storeBatch call. A lot is created unaccepted; slot allocation only runs
// when it is accepted, and acceptance happens at most once.
type Lot struct {
	shared.BaseAggregateRoot
	LotCode    string           `gorm:"type:varchar(40);not null;uniqueIndex"`
	ImportDate time.Time        `gorm:"not null;index"`
	Accepted   bool             `gorm:"not null;default:false"`
	SupplierID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Rotation   RotationPolicy   `gorm:"type:varchar(10);not null"`
	Price      *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Items      []LotItem        `gorm:"foreignKey:LotID"`
}

// TableName returns the table name for GORM
func (Lot) TableName() string {
	return "lots"
}

// LotItem links one physical product unit to its lot
type LotItem struct {
	shared.BaseEntity
	LotID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (LotItem) TableName() string {
	return "lot_items"
}

// NewLot registers an unaccepted lot. An empty lotCode gets a generated
// LOT-<date>-<suffix> code.
func NewLot(supplierID uuid.UUID, rotation RotationPolicy, lotCode string, importDate time.Time, price *decimal.Decimal) (*Lot, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if !rotation.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROTATION", "Unknown rotation policy: "+string(rotation))
	}
	if importDate.IsZero() {
		importDate = time.Now()
	}
	if lotCode == "" {
		lotCode = generateLotCode(importDate)
	}
	if price != nil && price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Lot price cannot be negative")
	}

	lot := &Lot{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		LotCode:           lotCode,
		ImportDate:        importDate,
		SupplierID:        supplierID,
		Rotation:          rotation,
		Price:             price,
	}

	lot.AddDomainEvent(NewLotRegisteredEvent(lot))
	return lot, nil
}

// generateLotCode builds LOT-<yyyymmdd>-<8 hex chars>
func generateLotCode(importDate time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "LOT-" + importDate.Format("20060102") + "-" + suffix
}

// AddItem records one physical unit as part of the lot
func (l *Lot) AddItem(productID uuid.UUID) error {
	if l.Accepted {
		return shared.NewDomainError("LOT_ACCEPTED", "Cannot add items to an accepted lot")
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	l.Items = append(l.Items, LotItem{
		BaseEntity: shared.NewBaseEntity(),
		LotID:      l.ID,
		ProductID:  productID,
	})
	l.Touch()
	return nil
}

// Quantity returns the number of physical units in the lot
func (l *Lot) Quantity() int {
	return len(l.Items)
}

// Accept flips the lot to accepted. The second and every later call is a
// no-op; the return value reports whether this call did the flip.
func (l *Lot) Accept() bool {
	if l.Accepted {
		return false
	}
	l.Accepted = true
	l.Touch()
	l.IncrementVersion()
	l.AddDomainEvent(NewLotAcceptedEvent(l))
	return true
}
