package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("should create item and normalize SKU", func(t *testing.T) {
		item, err := NewItem(" pvc-20 ", "PVC pipe 20mm", "m", 10, decimal.NewFromFloat(3.50))
		require.NoError(t, err)

		assert.Equal(t, "PVC-20", item.SKU)
		assert.Equal(t, 0, item.QuantityOnHand)
		assert.Equal(t, 10, item.LowStockThreshold)
	})

	t.Run("should default unit", func(t *testing.T) {
		item, err := NewItem("TAP-01", "Basin tap", "", 5, decimal.NewFromFloat(28))
		require.NoError(t, err)
		assert.Equal(t, "unit", item.Unit)
	})

	t.Run("should fail with empty SKU", func(t *testing.T) {
		_, err := NewItem("", "PVC pipe", "m", 10, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("should fail with negative threshold", func(t *testing.T) {
		_, err := NewItem("PVC-20", "PVC pipe", "m", -1, decimal.Zero)
		assert.Error(t, err)
	})
}

func TestItemStock(t *testing.T) {
	t.Run("should receive and consume stock", func(t *testing.T) {
		item, err := NewItem("PVC-20", "PVC pipe 20mm", "m", 10, decimal.NewFromFloat(3.50))
		require.NoError(t, err)

		require.NoError(t, item.Receive(50))
		assert.Equal(t, 50, item.QuantityOnHand)

		require.NoError(t, item.Consume(30))
		assert.Equal(t, 20, item.QuantityOnHand)
	})

	t.Run("should not allow stock to go negative", func(t *testing.T) {
		item, err := NewItem("PVC-20", "PVC pipe 20mm", "m", 10, decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, item.Receive(5))

		err = item.Consume(6)
		assert.Error(t, err)
		assert.Equal(t, 5, item.QuantityOnHand)
	})

	t.Run("should reject non-positive quantities", func(t *testing.T) {
		item, err := NewItem("PVC-20", "PVC pipe 20mm", "m", 10, decimal.Zero)
		require.NoError(t, err)

		assert.Error(t, item.Receive(0))
		assert.Error(t, item.Consume(-1))
	})
}

func TestLowStockAndDemand(t *testing.T) {
	t.Run("should report low stock at or below threshold", func(t *testing.T) {
		item, err := NewItem("PVC-20", "PVC pipe 20mm", "m", 10, decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, item.Receive(10))

		assert.True(t, item.IsLowStock())

		require.NoError(t, item.Receive(1))
		assert.False(t, item.IsLowStock())
	})

	t.Run("suggested reorder restores twice the threshold", func(t *testing.T) {
		item, err := NewItem("PVC-20", "PVC pipe 20mm", "m", 10, decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, item.Receive(4))

		assert.Equal(t, 16, item.SuggestedReorder())
	})

	t.Run("suggested reorder is zero when stocked", func(t *testing.T) {
		item, err := NewItem("PVC-20", "PVC pipe 20mm", "m", 10, decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, item.Receive(25))

		assert.Equal(t, 0, item.SuggestedReorder())
	})

	t.Run("demand list includes only low-stock items", func(t *testing.T) {
		low, err := NewItem("PVC-20", "PVC pipe 20mm", "m", 10, decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, low.Receive(3))

		stocked, err := NewItem("TAP-01", "Basin tap", "unit", 5, decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, stocked.Receive(40))

		list := BuildDemandList([]Item{*low, *stocked})

		require.Len(t, list, 1)
		assert.Equal(t, "PVC-20", list[0].SKU)
		assert.Equal(t, 17, list[0].SuggestedReorder)
	})
}
