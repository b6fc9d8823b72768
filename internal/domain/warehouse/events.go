package warehouse

import (
	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeWarehouse = "Warehouse"
	AggregateTypeSection   = "Section"
)

// Event type constants
const (
	EventTypeSectionCreated    = "SectionCreated"
	EventTypeSectionTerminated = "SectionTerminated"
	EventTypeSlotBound         = "SlotBound"
	EventTypeSlotReleased      = "SlotReleased"
)

// SectionCreatedEvent is raised when a new section is leased
type SectionCreatedEvent struct {
	shared.BaseDomainEvent
	SectionID   uuid.UUID  `json:"section_id"`
	WarehouseID uuid.UUID  `json:"warehouse_id"`
	Name        string     `json:"name"`
	Layout      LayoutMode `json:"layout"`
	TotalSlots  int        `json:"total_slots"`
}

// NewSectionCreatedEvent creates a new SectionCreatedEvent
func NewSectionCreatedEvent(section *Section) *SectionCreatedEvent {
	return &SectionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSectionCreated, AggregateTypeSection, section.ID),
		SectionID:       section.ID,
		WarehouseID:     section.WarehouseID,
		Name:            section.Name,
		Layout:          section.Layout,
		TotalSlots:      section.TotalSlots(),
	}
}

// EventType returns the event type name
func (e *SectionCreatedEvent) EventType() string {
	return EventTypeSectionCreated
}

// SectionTerminatedEvent is raised when a section lease ends
type SectionTerminatedEvent struct {
	shared.BaseDomainEvent
	SectionID   uuid.UUID `json:"section_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Name        string    `json:"name"`
}

// NewSectionTerminatedEvent creates a new SectionTerminatedEvent
func NewSectionTerminatedEvent(section *Section) *SectionTerminatedEvent {
	return &SectionTerminatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSectionTerminated, AggregateTypeSection, section.ID),
		SectionID:       section.ID,
		WarehouseID:     section.WarehouseID,
		Name:            section.Name,
	}
}

// EventType returns the event type name
func (e *SectionTerminatedEvent) EventType() string {
	return EventTypeSectionTerminated
}

// SlotBoundEvent is raised when a product is bound to a slot
type SlotBoundEvent struct {
	shared.BaseDomainEvent
	SectionID uuid.UUID `json:"section_id"`
	SlotID    uuid.UUID `json:"slot_id"`
	SlotKind  SlotKind  `json:"slot_kind"`
	ProductID uuid.UUID `json:"product_id"`
	X         int       `json:"x"`
	Y         int       `json:"y"`
}

// NewSlotBoundEvent creates a new SlotBoundEvent
func NewSlotBoundEvent(sectionID uuid.UUID, slot Slot, productID uuid.UUID, x, y int) *SlotBoundEvent {
	return &SlotBoundEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSlotBound, AggregateTypeSection, sectionID),
		SectionID:       sectionID,
		SlotID:          slot.GetID(),
		SlotKind:        slot.Kind(),
		ProductID:       productID,
		X:               x,
		Y:               y,
	}
}

// EventType returns the event type name
func (e *SlotBoundEvent) EventType() string {
	return EventTypeSlotBound
}

// SlotReleasedEvent is raised when a slot is vacated
type SlotReleasedEvent struct {
	shared.BaseDomainEvent
	SectionID uuid.UUID `json:"section_id"`
	SlotID    uuid.UUID `json:"slot_id"`
	SlotKind  SlotKind  `json:"slot_kind"`
	ProductID uuid.UUID `json:"product_id"`
}

// NewSlotReleasedEvent creates a new SlotReleasedEvent
func NewSlotReleasedEvent(sectionID uuid.UUID, slot Slot, productID uuid.UUID) *SlotReleasedEvent {
	return &SlotReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSlotReleased, AggregateTypeSection, sectionID),
		SectionID:       sectionID,
		SlotID:          slot.GetID(),
		SlotKind:        slot.Kind(),
		ProductID:       productID,
	}
}

// EventType returns the event type name
func (e *SlotReleasedEvent) EventType() string {
	return EventTypeSlotReleased
}
