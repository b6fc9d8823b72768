package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// testEvent implements DomainEvent for testing
type testEvent struct {
	shared.BaseDomainEvent
	Data string `json:"data"`
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New()),
		Data:            "test data",
	}
}

// testHandler implements EventHandler for testing
type testHandler struct {
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
	panics     bool
	mu         sync.Mutex
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.panics {
		panic("handler exploded")
	}
	h.handled = append(h.handled, event)
	return h.err
}

func (h *testHandler) EventTypes() []string {
	return h.eventTypes
}

func (h *testHandler) getHandled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	t.Run("delivers to subscribed handler", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := newTestHandler("LotAccepted")
		bus.Subscribe(handler, "LotAccepted")

		event := newTestEvent("LotAccepted")
		require.NoError(t, bus.Publish(context.Background(), event))

		handled := handler.getHandled()
		require.Len(t, handled, 1)
		assert.Equal(t, event.EventID(), handled[0].EventID())
	})

	t.Run("skips handlers for other types", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := newTestHandler("DispatchAccepted")
		bus.Subscribe(handler, "DispatchAccepted")

		require.NoError(t, bus.Publish(context.Background(), newTestEvent("LotAccepted")))
		assert.Empty(t, handler.getHandled())
	})

	t.Run("wildcard handler receives everything", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := newTestHandler()
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(context.Background(),
			newTestEvent("LotAccepted"), newTestEvent("DispatchRejected")))
		assert.Len(t, handler.getHandled(), 2)
	})

	t.Run("handler error does not stop delivery", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := newTestHandler("SlotBound")
		failing.err = errors.New("notification backend down")
		healthy := newTestHandler("SlotBound")
		bus.Subscribe(failing, "SlotBound")
		bus.Subscribe(healthy, "SlotBound")

		require.NoError(t, bus.Publish(context.Background(), newTestEvent("SlotBound")))
		assert.Len(t, healthy.getHandled(), 1)
	})

	t.Run("handler panic is contained", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicking := newTestHandler("SlotBound")
		panicking.panics = true
		bus.Subscribe(panicking, "SlotBound")

		assert.NotPanics(t, func() {
			_ = bus.Publish(context.Background(), newTestEvent("SlotBound"))
		})
	})
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler("LotAccepted")
	bus.Subscribe(handler, "LotAccepted")
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("LotAccepted")))
	assert.Empty(t, handler.getHandled())
}

func TestInMemoryEventBus_SubscribeUsesHandlerTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler("SectionCreated", "SectionTerminated")
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("SectionTerminated")))
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("LotAccepted")))
	assert.Len(t, handler.getHandled(), 1)
}

func TestHandlerRegistry(t *testing.T) {
	registry := NewHandlerRegistry()
	a := newTestHandler("A")
	b := newTestHandler("A", "B")

	registry.Register(a, "A")
	registry.Register(b, "A", "B")

	assert.Len(t, registry.HandlersFor("A"), 2)
	assert.Len(t, registry.HandlersFor("B"), 1)
	assert.Empty(t, registry.HandlersFor("C"))

	registry.Unregister(b)
	assert.Len(t, registry.HandlersFor("A"), 1)
	assert.Empty(t, registry.HandlersFor("B"))
}
