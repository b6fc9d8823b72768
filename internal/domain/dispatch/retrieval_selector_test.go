package dispatch

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/intake"
	"github.com/wms/backend/internal/domain/shared"
)

func TestRetrievalSelector_Select(t *testing.T) {
	selector := NewRetrievalSelector()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("FIFO takes the earliest lots", func(t *testing.T) {
		d1 := newCandidate(t, "Dune", base, nil)
		d2 := newCandidate(t, "Dune", base.AddDate(0, 0, 1), nil)
		d3 := newCandidate(t, "Dune", base.AddDate(0, 0, 2), nil)

		selected, err := selector.Select(d1.Product, []Candidate{d3, d1, d2}, 2, intake.RotationFIFO)

		require.NoError(t, err)
		require.Len(t, selected, 2)
		assert.Equal(t, d1.Product.ID, selected[0].Product.ID)
		assert.Equal(t, d2.Product.ID, selected[1].Product.ID)
	})

	t.Run("LIFO takes the latest lots", func(t *testing.T) {
		d1 := newCandidate(t, "Dune", base, nil)
		d2 := newCandidate(t, "Dune", base.AddDate(0, 0, 1), nil)
		d3 := newCandidate(t, "Dune", base.AddDate(0, 0, 2), nil)

		selected, err := selector.Select(d1.Product, []Candidate{d1, d2, d3}, 2, intake.RotationLIFO)

		require.NoError(t, err)
		assert.Equal(t, d3.Product.ID, selected[0].Product.ID)
		assert.Equal(t, d2.Product.ID, selected[1].Product.ID)
	})

	t.Run("filters units with a different signature", func(t *testing.T) {
		reference := newCandidate(t, "Dune", base, nil)
		other := newCandidate(t, "Foundation", base, nil)

		_, err := selector.Select(reference.Product, []Candidate{reference, other}, 2, intake.RotationFIFO)

		require.ErrorIs(t, err, shared.ErrInsufficientStock)
	})

	t.Run("filters reserved and dispatched units", func(t *testing.T) {
		reference := newCandidate(t, "Dune", base, nil)
		reserved := newCandidate(t, "Dune", base, nil)
		require.NoError(t, reserved.Product.ReserveForDispatch(uuid.New()))

		_, err := selector.Select(reference.Product, []Candidate{reference, reserved}, 2, intake.RotationFIFO)

		require.ErrorIs(t, err, shared.ErrInsufficientStock)
	})

	t.Run("fails when the pool is too small", func(t *testing.T) {
		reference := newCandidate(t, "Dune", base, nil)

		_, err := selector.Select(reference.Product, []Candidate{reference}, 5, intake.RotationFIFO)

		require.ErrorIs(t, err, shared.ErrInsufficientStock)
	})

	t.Run("rejects a non-positive quantity", func(t *testing.T) {
		reference := newCandidate(t, "Dune", base, nil)

		_, err := selector.Select(reference.Product, []Candidate{reference}, 0, intake.RotationFIFO)

		assert.Error(t, err)
	})
}
