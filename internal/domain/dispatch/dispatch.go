package dispatch

import (
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// DispatchStatus represents the lifecycle state of a dispatch
type DispatchStatus string

const (
	DispatchStatusPending   DispatchStatus = "PENDING"
	DispatchStatusAccepted  DispatchStatus = "ACCEPTED"
	DispatchStatusRejected  DispatchStatus = "REJECTED"
	DispatchStatusCompleted DispatchStatus = "COMPLETED"
)

// Dispatch is one outbound retrieval request. It is created PENDING with
// its full selection already made; an administrator then accepts or rejects
// it exactly once, and an accepted dispatch may later be completed.
type Dispatch struct {
	shared.BaseAggregateRoot
	BuyerID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Status       DispatchStatus `gorm:"type:varchar(10);not null;default:'PENDING'"`
	RejectReason string         `gorm:"type:text"`
	Items        []DispatchItem `gorm:"foreignKey:DispatchID"`
}

// TableName returns the table name for GORM
func (Dispatch) TableName() string {
	return "dispatches"
}

// DispatchItem is one requested line: a quantity of interchangeable units
// plus the concrete instances selected to fulfill it.
type DispatchItem struct {
	shared.BaseEntity
	DispatchID  uuid.UUID           `gorm:"type:uuid;not null;index"`
	ProductName string              `gorm:"type:varchar(200);not null"`
	Quantity    int                 `gorm:"not null"`
	ExportDate  time.Time           `gorm:"not null"`
	Selections  []DispatchSelection `gorm:"foreignKey:DispatchItemID"`
}

// TableName returns the table name for GORM
func (DispatchItem) TableName() string {
	return "dispatch_items"
}

// DispatchSelection pins one selected physical unit to a dispatch item
type DispatchSelection struct {
	shared.BaseEntity
	DispatchItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_selection_product"`
}

// TableName returns the table name for GORM
func (DispatchSelection) TableName() string {
	return "dispatch_selections"
}

// NewDispatch creates a pending dispatch for a buyer
func NewDispatch(buyerID uuid.UUID) (*Dispatch, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer ID cannot be empty")
	}
	return &Dispatch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuyerID:           buyerID,
		Status:            DispatchStatusPending,
	}, nil
}

// AddItem attaches a fulfilled line to the dispatch
func (d *Dispatch) AddItem(productName string, quantity int, exportDate time.Time, productIDs []uuid.UUID) error {
	if d.Status != DispatchStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending dispatch")
	}
	if productName == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if len(productIDs) != quantity {
		return shared.NewDomainError("INVALID_SELECTION", "Selected instance count must equal the requested quantity")
	}

	item := DispatchItem{
		BaseEntity:  shared.NewBaseEntity(),
		DispatchID:  d.ID,
		ProductName: productName,
		Quantity:    quantity,
		ExportDate:  exportDate,
	}
	for _, productID := range productIDs {
		item.Selections = append(item.Selections, DispatchSelection{
			BaseEntity:     shared.NewBaseEntity(),
			DispatchItemID: item.ID,
			ProductID:      productID,
		})
	}
	d.Items = append(d.Items, item)
	d.Touch()
	return nil
}

// SelectedProductIDs returns every unit selected across all items
func (d *Dispatch) SelectedProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0)
	for i := range d.Items {
		for j := range d.Items[i].Selections {
			ids = append(ids, d.Items[i].Selections[j].ProductID)
		}
	}
	return ids
}

// IsPending reports whether the dispatch still awaits a decision
func (d *Dispatch) IsPending() bool {
	return d.Status == DispatchStatusPending
}

// Accept moves PENDING to ACCEPTED. A dispatch leaves PENDING exactly once.
func (d *Dispatch) Accept() error {
	if d.Status != DispatchStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only a pending dispatch can be accepted")
	}
	d.Status = DispatchStatusAccepted
	d.Touch()
	d.IncrementVersion()
	d.AddDomainEvent(NewDispatchAcceptedEvent(d))
	return nil
}

// Reject moves PENDING to REJECTED and records the reason
func (d *Dispatch) Reject(reason string) error {
	if d.Status != DispatchStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only a pending dispatch can be rejected")
	}
	d.Status = DispatchStatusRejected
	d.RejectReason = reason
	d.Touch()
	d.IncrementVersion()
	d.AddDomainEvent(NewDispatchRejectedEvent(d))
	return nil
}

// Complete moves ACCEPTED to COMPLETED once the goods have left the dock
func (d *Dispatch) Complete() error {
	if d.Status != DispatchStatusAccepted {
		return shared.NewDomainError("INVALID_STATE", "Only an accepted dispatch can be completed")
	}
	d.Status = DispatchStatusCompleted
	d.Touch()
	d.IncrementVersion()
	d.AddDomainEvent(NewDispatchCompletedEvent(d))
	return nil
}
