package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormItemRepository_FindBySKU(t *testing.T) {
	t.Run("normalizes SKU before querying", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormItemRepository(db)

		itemID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "sku", "name", "quantity_on_hand", "low_stock_threshold"}).
			AddRow(itemID, "PVC-20MM", "PVC Pipe 20mm", 40, 10)

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE sku = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("PVC-20MM", 1).
			WillReturnRows(rows)

		item, err := repo.FindBySKU(context.Background(), "  pvc-20mm ")

		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, "PVC-20MM", item.SKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects empty SKU", func(t *testing.T) {
		db, _, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormItemRepository(db)

		item, err := repo.FindBySKU(context.Background(), "   ")

		assert.Error(t, err)
		assert.Nil(t, item)
	})
}

func TestGormItemRepository_FindLowStock(t *testing.T) {
	t.Run("queries by threshold comparison", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormItemRepository(db)

		rows := sqlmock.NewRows([]string{"id", "sku", "name", "quantity_on_hand", "low_stock_threshold"}).
			AddRow(uuid.New(), "CEM-50KG", "Cement 50kg", 3, 10).
			AddRow(uuid.New(), "TIL-30CM", "Floor Tile 30cm", 8, 20)

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE quantity_on_hand <= low_stock_threshold ORDER BY sku ASC`).
			WillReturnRows(rows)

		items, err := repo.FindLowStock(context.Background())

		assert.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "CEM-50KG", items[0].SKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
