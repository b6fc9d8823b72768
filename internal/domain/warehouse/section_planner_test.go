package warehouse

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/shared"
)

func TestSectionPlanner_PlanSection(t *testing.T) {
	planner := NewSectionPlanner(100)

	t.Run("places a flat section and reserves its footprint", func(t *testing.T) {
		wh, err := NewWarehouse("Main", 60)
		require.NoError(t, err)

		section, err := planner.PlanSection(wh, nil, PlanSectionRequest{
			Name:           "F-1",
			Layout:         LayoutFlat,
			RowCount:       2,
			MaintenanceFee: decimal.NewFromInt(40),
		})

		require.NoError(t, err)
		assert.Equal(t, 0, section.CoordinateX)
		assert.Equal(t, 0, section.CoordinateY)
		assert.Len(t, section.Slots, 12)
		assert.Equal(t, 12, wh.UsedSlots)
	})

	t.Run("places a shelved section charging one floor row per shelf", func(t *testing.T) {
		wh, err := NewWarehouse("Main", 60)
		require.NoError(t, err)

		section, err := planner.PlanSection(wh, nil, PlanSectionRequest{
			Name:           "A-1",
			Layout:         LayoutShelved,
			NumShelves:     2,
			ShelfHeight:    4,
			MaintenanceFee: decimal.NewFromInt(90),
		})

		require.NoError(t, err)
		require.Len(t, section.Shelves, 2)
		assert.Equal(t, 2*4*ShelfWidth, section.TotalSlots())
		assert.Equal(t, 2*ShelfWidth, wh.UsedSlots)
	})

	t.Run("assigns the next free coordinate in row-major order", func(t *testing.T) {
		wh, err := NewWarehouse("Main", 600)
		require.NoError(t, err)

		existing := []Section{
			{CoordinateX: 0, CoordinateY: 0},
			{CoordinateX: 0, CoordinateY: 1},
		}

		section, err := planner.PlanSection(wh, existing, PlanSectionRequest{
			Name: "F-2", Layout: LayoutFlat, RowCount: 1,
		})

		require.NoError(t, err)
		assert.Equal(t, 0, section.CoordinateX)
		assert.Equal(t, 2, section.CoordinateY)
	})

	t.Run("moves to the second column when the first is full", func(t *testing.T) {
		small := NewSectionPlanner(2)
		wh, err := NewWarehouse("Main", 600)
		require.NoError(t, err)

		existing := []Section{
			{CoordinateX: 0, CoordinateY: 0},
			{CoordinateX: 0, CoordinateY: 1},
		}

		section, err := small.PlanSection(wh, existing, PlanSectionRequest{
			Name: "F-3", Layout: LayoutFlat, RowCount: 1,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, section.CoordinateX)
		assert.Equal(t, 0, section.CoordinateY)
	})

	t.Run("fails with NO_FREE_COORDINATE when the floor plan is full", func(t *testing.T) {
		tiny := NewSectionPlanner(1)
		wh, err := NewWarehouse("Main", 600)
		require.NoError(t, err)

		existing := []Section{
			{CoordinateX: 0, CoordinateY: 0},
			{CoordinateX: 1, CoordinateY: 0},
		}

		section, err := tiny.PlanSection(wh, existing, PlanSectionRequest{
			Name: "F-4", Layout: LayoutFlat, RowCount: 1,
		})

		require.ErrorIs(t, err, shared.ErrNoFreeCoordinate)
		assert.Nil(t, section)
		assert.Equal(t, 0, wh.UsedSlots)
	})

	t.Run("fails with CAPACITY_EXCEEDED when the warehouse budget is short", func(t *testing.T) {
		wh, err := NewWarehouse("Main", 6)
		require.NoError(t, err)

		section, err := planner.PlanSection(wh, nil, PlanSectionRequest{
			Name: "F-5", Layout: LayoutFlat, RowCount: 2,
		})

		require.ErrorIs(t, err, shared.ErrCapacityExceeded)
		assert.Nil(t, section)
	})

	t.Run("attaches requested conditions", func(t *testing.T) {
		wh, err := NewWarehouse("Main", 600)
		require.NoError(t, err)

		section, err := planner.PlanSection(wh, nil, PlanSectionRequest{
			Name: "C-1", Layout: LayoutFlat, RowCount: 1,
			Conditions: []ConditionRequirement{
				{Type: ConditionTypeTemperature, Min: 2, Max: 8},
				{Type: ConditionTypeHazardous, Min: 5, Max: 9},
			},
		})

		require.NoError(t, err)
		require.Len(t, section.Conditions, 2)
		assert.Equal(t, 2.0, section.Conditions[0].Min)
		assert.Equal(t, 0.0, section.Conditions[1].Min)
		assert.Equal(t, 0.0, section.Conditions[1].Max)
	})

	t.Run("rejects an invalid layout", func(t *testing.T) {
		wh, err := NewWarehouse("Main", 600)
		require.NoError(t, err)

		_, err = planner.PlanSection(wh, nil, PlanSectionRequest{
			Name: "X", Layout: LayoutMode("STACKED"), RowCount: 1,
		})

		assert.Error(t, err)
	})
}
