package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/shared"
)

func TestGormSlotRepository_FindByProduct(t *testing.T) {
	db := setupTestDB(t)
	sectionRepo := NewGormSectionRepository(db)
	repo := NewGormSlotRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	shelvedProductID := uuid.New()

	flat := newTestFlatSection(t, uuid.New(), "slot-flat", 1)
	require.NoError(t, flat.Slots[0].Occupy(productID))
	require.NoError(t, sectionRepo.Save(ctx, flat))

	shelved := newTestShelvedSection(t, uuid.New(), "slot-shelved")
	require.NoError(t, shelved.Shelves[0].Slots[0].Occupy(shelvedProductID))
	require.NoError(t, sectionRepo.Save(ctx, shelved))

	t.Run("finds flat slot by product", func(t *testing.T) {
		slot, err := repo.FindSectionSlotByProduct(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, flat.Slots[0].ID, slot.ID)
		assert.True(t, slot.Occupied)
	})

	t.Run("finds shelf slot by product", func(t *testing.T) {
		slot, err := repo.FindShelfSlotByProduct(ctx, shelvedProductID)
		require.NoError(t, err)
		assert.Equal(t, shelved.Shelves[0].Slots[0].ID, slot.ID)
	})

	t.Run("returns not found for unbound product", func(t *testing.T) {
		_, err := repo.FindSectionSlotByProduct(ctx, uuid.New())
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormSlotRepository_Save(t *testing.T) {
	db := setupTestDB(t)
	sectionRepo := NewGormSectionRepository(db)
	repo := NewGormSlotRepository(db)
	ctx := context.Background()

	flat := newTestFlatSection(t, uuid.New(), "slot-save", 1)
	require.NoError(t, sectionRepo.Save(ctx, flat))

	productID := uuid.New()
	slot := &flat.Slots[0]
	require.NoError(t, slot.Occupy(productID))
	require.NoError(t, repo.SaveSectionSlot(ctx, slot))

	found, err := repo.FindSectionSlotByProduct(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, slot.ID, found.ID)

	require.NoError(t, found.Vacate())
	require.NoError(t, repo.SaveSectionSlot(ctx, found))

	_, err = repo.FindSectionSlotByProduct(ctx, productID)
	assert.Equal(t, shared.ErrNotFound, err)
}
