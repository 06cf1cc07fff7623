package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ParseDecimal converts a raw record value into an exact decimal.
// Records loaded from the store may carry numbers, numeric strings or
// garbage; anything non-numeric degrades to zero so a single malformed
// field never fails a whole computation. Rejecting bad input is the
// validation engine's job, not the parser's.
func ParseDecimal(v any) decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return val
	case float64:
		return decimal.NewFromFloat(val)
	case int:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// FormatAmount renders a monetary amount with two decimal places for
// display surfaces like email bodies.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
