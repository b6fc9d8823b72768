package warehouse

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/shared"
)

func TestShelfSlot_OccupyVacate(t *testing.T) {
	productID := uuid.New()

	t.Run("occupy binds flag and product together", func(t *testing.T) {
		slot := &ShelfSlot{BaseEntity: shared.NewBaseEntity()}

		require.NoError(t, slot.Occupy(productID))

		assert.True(t, slot.Occupied)
		require.NotNil(t, slot.ProductID)
		assert.Equal(t, productID, *slot.ProductID)
		assert.False(t, slot.IsAvailable())
	})

	t.Run("occupy fails on occupied slot", func(t *testing.T) {
		slot := &ShelfSlot{BaseEntity: shared.NewBaseEntity()}
		require.NoError(t, slot.Occupy(productID))

		err := slot.Occupy(uuid.New())

		require.Error(t, err)
		assert.Equal(t, productID, *slot.ProductID)
	})

	t.Run("occupy fails with nil product", func(t *testing.T) {
		slot := &ShelfSlot{BaseEntity: shared.NewBaseEntity()}

		require.Error(t, slot.Occupy(uuid.Nil))
		assert.False(t, slot.Occupied)
		assert.Nil(t, slot.ProductID)
	})

	t.Run("vacate clears flag and product together", func(t *testing.T) {
		slot := &ShelfSlot{BaseEntity: shared.NewBaseEntity()}
		require.NoError(t, slot.Occupy(productID))

		require.NoError(t, slot.Vacate())

		assert.False(t, slot.Occupied)
		assert.Nil(t, slot.ProductID)
		assert.True(t, slot.IsAvailable())
	})

	t.Run("vacate fails on free slot", func(t *testing.T) {
		slot := &ShelfSlot{BaseEntity: shared.NewBaseEntity()}

		assert.Error(t, slot.Vacate())
	})
}

func TestSectionSlot_OccupyVacate(t *testing.T) {
	productID := uuid.New()

	t.Run("occupy then vacate round-trips", func(t *testing.T) {
		slot := &SectionSlot{BaseEntity: shared.NewBaseEntity()}

		require.NoError(t, slot.Occupy(productID))
		assert.True(t, slot.Occupied)
		require.NotNil(t, slot.ProductID)

		require.NoError(t, slot.Vacate())
		assert.False(t, slot.Occupied)
		assert.Nil(t, slot.ProductID)
	})

	t.Run("double occupy fails", func(t *testing.T) {
		slot := &SectionSlot{BaseEntity: shared.NewBaseEntity()}
		require.NoError(t, slot.Occupy(productID))

		assert.Error(t, slot.Occupy(uuid.New()))
	})
}
