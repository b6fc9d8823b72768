package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/warehouse"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockWarehouseRepository creates a GormWarehouseRepository with a mocked SQL connection
func newMockWarehouseRepository(t *testing.T) (*GormWarehouseRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormWarehouseRepository(gormDB), mock, mockDB
}

func TestGormWarehouseRepository_FindByID(t *testing.T) {
	t.Run("finds existing warehouse", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		warehouseID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "name", "total_slots", "used_slots", "version"}).
			AddRow(warehouseID, "main", 10000, 120, 1)

		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE id = \$1`).
			WithArgs(warehouseID, 1).
			WillReturnRows(rows)

		wh, err := repo.FindByID(context.Background(), warehouseID)

		assert.NoError(t, err)
		assert.Equal(t, warehouseID, wh.ID)
		assert.Equal(t, "main", wh.Name)
		assert.Equal(t, 10000, wh.TotalSlots)
		assert.Equal(t, 120, wh.UsedSlots)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		warehouseID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE id = \$1`).
			WithArgs(warehouseID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		wh, err := repo.FindByID(context.Background(), warehouseID)

		assert.Nil(t, wh)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormWarehouseRepository_FindByName(t *testing.T) {
	t.Run("finds warehouse by name", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		warehouseID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "name", "total_slots", "used_slots", "version"}).
			AddRow(warehouseID, "main", 10000, 0, 1)

		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE name = \$1`).
			WithArgs("main", 1).
			WillReturnRows(rows)

		wh, err := repo.FindByName(context.Background(), "main")

		assert.NoError(t, err)
		assert.Equal(t, warehouseID, wh.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for unknown name", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE name = \$1`).
			WithArgs("ghost", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		wh, err := repo.FindByName(context.Background(), "ghost")

		assert.Nil(t, wh)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormWarehouseRepository_SaveWithLock(t *testing.T) {
	newTestWarehouse := func(t *testing.T) *warehouse.Warehouse {
		t.Helper()
		wh, err := warehouse.NewWarehouse("main", 10000)
		require.NoError(t, err)
		return wh
	}

	t.Run("updates when version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		wh := newTestWarehouse(t)
		require.NoError(t, wh.ReserveSlots(60))

		mock.ExpectExec(`UPDATE "warehouses" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), wh)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports conflict when no row matches", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		wh := newTestWarehouse(t)
		require.NoError(t, wh.ReserveSlots(60))

		mock.ExpectExec(`UPDATE "warehouses" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), wh)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
