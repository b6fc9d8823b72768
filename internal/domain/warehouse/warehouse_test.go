package warehouse

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWarehouse(t *testing.T) {
	t.Run("creates warehouse successfully", func(t *testing.T) {
		wh, err := NewWarehouse("Main", 600)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, wh.ID)
		assert.Equal(t, "Main", wh.Name)
		assert.Equal(t, 600, wh.TotalSlots)
		assert.Equal(t, 0, wh.UsedSlots)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		wh, err := NewWarehouse("", 600)

		require.Error(t, err)
		assert.Nil(t, wh)
	})

	t.Run("fails with non-positive capacity", func(t *testing.T) {
		wh, err := NewWarehouse("Main", 0)

		require.Error(t, err)
		assert.Nil(t, wh)
	})
}

func TestWarehouse_ReserveSlots(t *testing.T) {
	t.Run("reserves within capacity", func(t *testing.T) {
		wh, err := NewWarehouse("Main", 12)
		require.NoError(t, err)

		require.NoError(t, wh.ReserveSlots(6))
		assert.Equal(t, 6, wh.UsedSlots)
		assert.Equal(t, 6, wh.AvailableSlots())
		assert.True(t, wh.HasAvailableSlots(6))
		assert.False(t, wh.HasAvailableSlots(7))
	})

	t.Run("fails when capacity exceeded", func(t *testing.T) {
		wh, err := NewWarehouse("Main", 12)
		require.NoError(t, err)
		require.NoError(t, wh.ReserveSlots(12))

		err = wh.ReserveSlots(1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "free slots")
		assert.Equal(t, 12, wh.UsedSlots)
	})

	t.Run("fails with non-positive count", func(t *testing.T) {
		wh, err := NewWarehouse("Main", 12)
		require.NoError(t, err)

		assert.Error(t, wh.ReserveSlots(0))
		assert.Error(t, wh.ReserveSlots(-3))
	})
}

func TestWarehouse_ReleaseSlots(t *testing.T) {
	t.Run("releases reserved slots", func(t *testing.T) {
		wh, err := NewWarehouse("Main", 12)
		require.NoError(t, err)
		require.NoError(t, wh.ReserveSlots(12))

		require.NoError(t, wh.ReleaseSlots(6))
		assert.Equal(t, 6, wh.UsedSlots)
	})

	t.Run("fails when releasing more than in use", func(t *testing.T) {
		wh, err := NewWarehouse("Main", 12)
		require.NoError(t, err)
		require.NoError(t, wh.ReserveSlots(6))

		err = wh.ReleaseSlots(7)

		require.Error(t, err)
		assert.Equal(t, 6, wh.UsedSlots)
	})
}
