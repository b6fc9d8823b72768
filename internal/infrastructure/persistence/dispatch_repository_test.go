package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/dispatch"
	"github.com/wms/backend/internal/domain/shared"
)

func newTestDispatch(t *testing.T, buyerID uuid.UUID, lines ...int) *dispatch.Dispatch {
	t.Helper()

	d, err := dispatch.NewDispatch(buyerID)
	require.NoError(t, err)
	exportDate := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i, quantity := range lines {
		ids := make([]uuid.UUID, quantity)
		for j := range ids {
			ids[j] = uuid.New()
		}
		require.NoError(t, d.AddItem("line-"+string(rune('a'+i)), quantity, exportDate, ids))
	}
	return d
}

func TestGormDispatchRepository_SaveAndFindByIDWithItems(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDispatchRepository(db)
	ctx := context.Background()

	d := newTestDispatch(t, uuid.New(), 2, 1)
	require.NoError(t, repo.Save(ctx, d))

	found, err := repo.FindByIDWithItems(ctx, d.ID)
	require.NoError(t, err)

	assert.Equal(t, dispatch.DispatchStatusPending, found.Status)
	require.Len(t, found.Items, 2)

	selected := found.SelectedProductIDs()
	assert.Len(t, selected, 3)
	assert.ElementsMatch(t, d.SelectedProductIDs(), selected)
}

func TestGormDispatchRepository_FindByBuyer(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDispatchRepository(db)
	ctx := context.Background()

	buyerID := uuid.New()
	mine := newTestDispatch(t, buyerID, 1)
	other := newTestDispatch(t, uuid.New(), 1)

	require.NoError(t, repo.Save(ctx, mine))
	require.NoError(t, repo.Save(ctx, other))

	dispatches, err := repo.FindByBuyer(ctx, buyerID, shared.Filter{})
	require.NoError(t, err)

	require.Len(t, dispatches, 1)
	assert.Equal(t, mine.ID, dispatches[0].ID)
}

func TestGormDispatchRepository_FindByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDispatchRepository(db)
	ctx := context.Background()

	pending := newTestDispatch(t, uuid.New(), 1)
	accepted := newTestDispatch(t, uuid.New(), 1)
	require.NoError(t, accepted.Accept())
	rejected := newTestDispatch(t, uuid.New(), 1)
	require.NoError(t, rejected.Reject("out of stock"))

	for _, d := range []*dispatch.Dispatch{pending, accepted, rejected} {
		require.NoError(t, repo.Save(ctx, d))
	}

	found, err := repo.FindByStatus(ctx, dispatch.DispatchStatusPending, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, pending.ID, found[0].ID)

	found, err = repo.FindByStatus(ctx, dispatch.DispatchStatusRejected, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "out of stock", found[0].RejectReason)
}

func TestGormDispatchRepository_SaveWithLock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDispatchRepository(db)
	ctx := context.Background()

	t.Run("persists the accept transition", func(t *testing.T) {
		d := newTestDispatch(t, uuid.New(), 1)
		require.NoError(t, repo.Save(ctx, d))

		require.NoError(t, d.Accept())
		require.NoError(t, repo.SaveWithLock(ctx, d))

		found, err := repo.FindByID(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, dispatch.DispatchStatusAccepted, found.Status)
		assert.Equal(t, 2, found.Version)
	})

	t.Run("rejects a stale version", func(t *testing.T) {
		d := newTestDispatch(t, uuid.New(), 1)
		require.NoError(t, repo.Save(ctx, d))

		require.NoError(t, d.Accept())
		require.NoError(t, repo.SaveWithLock(ctx, d))

		err := repo.SaveWithLock(ctx, d)
		assert.Equal(t, shared.ErrConcurrencyConflict, err)
	})
}
