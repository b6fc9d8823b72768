package dispatch

import (
	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeDispatch = "Dispatch"

// Event type constants
const (
	EventTypeRetrievalRequested = "RetrievalRequested"
	EventTypeDispatchAccepted   = "DispatchAccepted"
	EventTypeDispatchRejected   = "DispatchRejected"
	EventTypeDispatchCompleted  = "DispatchCompleted"
)

// RetrievalRequestedEvent is raised when a buyer's retrieval request has
// been fulfilled into a pending dispatch
type RetrievalRequestedEvent struct {
	shared.BaseDomainEvent
	DispatchID uuid.UUID `json:"dispatch_id"`
	BuyerID    uuid.UUID `json:"buyer_id"`
	ItemCount  int       `json:"item_count"`
}

// NewRetrievalRequestedEvent creates a new RetrievalRequestedEvent
func NewRetrievalRequestedEvent(d *Dispatch) *RetrievalRequestedEvent {
	return &RetrievalRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRetrievalRequested, AggregateTypeDispatch, d.ID),
		DispatchID:      d.ID,
		BuyerID:         d.BuyerID,
		ItemCount:       len(d.Items),
	}
}

// EventType returns the event type name
func (e *RetrievalRequestedEvent) EventType() string {
	return EventTypeRetrievalRequested
}

// DispatchAcceptedEvent is raised when an administrator accepts a dispatch
type DispatchAcceptedEvent struct {
	shared.BaseDomainEvent
	DispatchID uuid.UUID `json:"dispatch_id"`
	BuyerID    uuid.UUID `json:"buyer_id"`
}

// NewDispatchAcceptedEvent creates a new DispatchAcceptedEvent
func NewDispatchAcceptedEvent(d *Dispatch) *DispatchAcceptedEvent {
	return &DispatchAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDispatchAccepted, AggregateTypeDispatch, d.ID),
		DispatchID:      d.ID,
		BuyerID:         d.BuyerID,
	}
}

// EventType returns the event type name
func (e *DispatchAcceptedEvent) EventType() string {
	return EventTypeDispatchAccepted
}

// DispatchRejectedEvent is raised when an administrator rejects a dispatch
type DispatchRejectedEvent struct {
	shared.BaseDomainEvent
	DispatchID uuid.UUID `json:"dispatch_id"`
	BuyerID    uuid.UUID `json:"buyer_id"`
	Reason     string    `json:"reason,omitempty"`
}

// NewDispatchRejectedEvent creates a new DispatchRejectedEvent
func NewDispatchRejectedEvent(d *Dispatch) *DispatchRejectedEvent {
	return &DispatchRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDispatchRejected, AggregateTypeDispatch, d.ID),
		DispatchID:      d.ID,
		BuyerID:         d.BuyerID,
		Reason:          d.RejectReason,
	}
}

// EventType returns the event type name
func (e *DispatchRejectedEvent) EventType() string {
	return EventTypeDispatchRejected
}

// DispatchCompletedEvent is raised when an accepted dispatch is closed out
type DispatchCompletedEvent struct {
	shared.BaseDomainEvent
	DispatchID uuid.UUID `json:"dispatch_id"`
	BuyerID    uuid.UUID `json:"buyer_id"`
}

// NewDispatchCompletedEvent creates a new DispatchCompletedEvent
func NewDispatchCompletedEvent(d *Dispatch) *DispatchCompletedEvent {
	return &DispatchCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDispatchCompleted, AggregateTypeDispatch, d.ID),
		DispatchID:      d.ID,
		BuyerID:         d.BuyerID,
	}
}

// EventType returns the event type name
func (e *DispatchCompletedEvent) EventType() string {
	return EventTypeDispatchCompleted
}
