package render

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	t.Run("should format to exactly two decimal places", func(t *testing.T) {
		assert.Equal(t, "RM 500.00", FormatCurrency(decimal.NewFromInt(500)))
		assert.Equal(t, "RM 4.50", FormatCurrency(decimal.NewFromFloat(4.5)))
		assert.Equal(t, "RM 1234.57", FormatCurrency(decimal.NewFromFloat(1234.567)))
		assert.Equal(t, "RM 0.00", FormatCurrency(decimal.Zero))
	})

	t.Run("should accept floats, ints and numeric strings", func(t *testing.T) {
		assert.Equal(t, "RM 12.30", FormatCurrency(12.3))
		assert.Equal(t, "RM 7.00", FormatCurrency(7))
		assert.Equal(t, "RM 99.99", FormatCurrency("99.99"))
	})

	t.Run("should fall back for nil and unparseable input", func(t *testing.T) {
		d := (*decimal.Decimal)(nil)
		assert.Equal(t, "RM 0.00", FormatCurrency(nil))
		assert.Equal(t, "RM 0.00", FormatCurrency(d))
		assert.Equal(t, "RM 0.00", FormatCurrency("abc"))
		assert.Equal(t, "RM 0.00", FormatCurrency(math.NaN()))
		assert.Equal(t, "RM 0.00", FormatCurrency(struct{}{}))
	})
}

func TestFormatDate(t *testing.T) {
	t.Run("should format with the fixed pattern", func(t *testing.T) {
		d := time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)
		assert.Equal(t, "Mar 5, 2026", FormatDate(d))
		assert.Equal(t, "Mar 5, 2026", FormatDate(&d))
	})

	t.Run("should parse ISO strings", func(t *testing.T) {
		assert.Equal(t, "Jan 15, 2026", FormatDate("2026-01-15"))
		assert.Equal(t, "Jan 15, 2026", FormatDate("2026-01-15T08:30:00Z"))
	})

	t.Run("should return empty string for bad input", func(t *testing.T) {
		assert.Equal(t, "", FormatDate(nil))
		assert.Equal(t, "", FormatDate(time.Time{}))
		assert.Equal(t, "", FormatDate((*time.Time)(nil)))
		assert.Equal(t, "", FormatDate("not-a-date"))
		assert.Equal(t, "", FormatDate(42))
	})
}
