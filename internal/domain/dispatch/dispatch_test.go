package dispatch

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDispatch(t *testing.T) *Dispatch {
	t.Helper()
	d, err := NewDispatch(uuid.New())
	require.NoError(t, err)
	return d
}

func TestNewDispatch(t *testing.T) {
	t.Run("starts pending", func(t *testing.T) {
		d := createTestDispatch(t)

		assert.Equal(t, DispatchStatusPending, d.Status)
		assert.True(t, d.IsPending())
		assert.Empty(t, d.Items)
	})

	t.Run("fails with nil buyer", func(t *testing.T) {
		d, err := NewDispatch(uuid.Nil)

		require.Error(t, err)
		assert.Nil(t, d)
	})
}

func TestDispatch_AddItem(t *testing.T) {
	t.Run("records the line with its selections", func(t *testing.T) {
		d := createTestDispatch(t)
		selected := []uuid.UUID{uuid.New(), uuid.New()}

		require.NoError(t, d.AddItem("Milk", 2, time.Now(), selected))

		require.Len(t, d.Items, 1)
		assert.Equal(t, "Milk", d.Items[0].ProductName)
		assert.Equal(t, 2, d.Items[0].Quantity)
		assert.ElementsMatch(t, selected, d.SelectedProductIDs())
	})

	t.Run("selection count must equal quantity", func(t *testing.T) {
		d := createTestDispatch(t)

		err := d.AddItem("Milk", 3, time.Now(), []uuid.UUID{uuid.New()})

		assert.Error(t, err)
	})

	t.Run("refuses items once decided", func(t *testing.T) {
		d := createTestDispatch(t)
		require.NoError(t, d.Accept())

		err := d.AddItem("Milk", 1, time.Now(), []uuid.UUID{uuid.New()})

		assert.Error(t, err)
	})
}

func TestDispatch_StateMachine(t *testing.T) {
	t.Run("pending to accepted", func(t *testing.T) {
		d := createTestDispatch(t)

		require.NoError(t, d.Accept())
		assert.Equal(t, DispatchStatusAccepted, d.Status)
	})

	t.Run("pending to rejected records the reason", func(t *testing.T) {
		d := createTestDispatch(t)

		require.NoError(t, d.Reject("out of delivery area"))
		assert.Equal(t, DispatchStatusRejected, d.Status)
		assert.Equal(t, "out of delivery area", d.RejectReason)
	})

	t.Run("leaves pending exactly once", func(t *testing.T) {
		d := createTestDispatch(t)
		require.NoError(t, d.Accept())

		assert.Error(t, d.Accept())
		assert.Error(t, d.Reject("late"))
	})

	t.Run("accepted to completed", func(t *testing.T) {
		d := createTestDispatch(t)
		require.NoError(t, d.Accept())

		require.NoError(t, d.Complete())
		assert.Equal(t, DispatchStatusCompleted, d.Status)
	})

	t.Run("cannot complete a pending or rejected dispatch", func(t *testing.T) {
		pending := createTestDispatch(t)
		assert.Error(t, pending.Complete())

		rejected := createTestDispatch(t)
		require.NoError(t, rejected.Reject("no stock"))
		assert.Error(t, rejected.Complete())
	})

	t.Run("transitions raise events", func(t *testing.T) {
		d := createTestDispatch(t)
		d.ClearDomainEvents()

		require.NoError(t, d.Accept())
		require.NoError(t, d.Complete())

		events := d.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypeDispatchAccepted, events[0].EventType())
		assert.Equal(t, EventTypeDispatchCompleted, events[1].EventType())
	})
}
