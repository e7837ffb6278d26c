package render

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	currencyPrefix = "RM "
	zeroCurrency   = "RM 0.00"
	datePattern    = "Jan 2, 2006"
)

// FormatCurrency formats an amount as "RM" with exactly two decimal
// places. Nil or unparseable input yields "RM 0.00". Never fails.
func FormatCurrency(v interface{}) string {
	d, ok := toDecimal(v)
	if !ok {
		return zeroCurrency
	}
	return currencyPrefix + d.StringFixed(2)
}

// toDecimal coerces the supported amount representations to a decimal
func toDecimal(v interface{}) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case nil:
		return decimal.Decimal{}, false
	case decimal.Decimal:
		return val, true
	case *decimal.Decimal:
		if val == nil {
			return decimal.Decimal{}, false
		}
		return *val, true
	case float64:
		// NaN and Inf have no decimal representation
		if val != val || val > 1e300 || val < -1e300 {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(val), true
	case float32:
		return toDecimal(float64(val))
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	}
	return decimal.Decimal{}, false
}

// FormatDate formats a date as "Jan 2, 2006". Zero, nil or malformed
// input yields an empty string. Never fails.
func FormatDate(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format(datePattern)
	case *time.Time:
		if val == nil {
			return ""
		}
		return FormatDate(*val)
	case string:
		if val == "" {
			return ""
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, val); err == nil {
				return t.Format(datePattern)
			}
		}
		return ""
	}
	return ""
}
