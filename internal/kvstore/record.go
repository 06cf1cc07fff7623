package kvstore

import (
	"time"

	"github.com/billfold/billfold/internal/types"
	"github.com/shopspring/decimal"
)

// Typed accessors for raw record fields. Records come back from the
// store as loosely typed JSON; these helpers keep the defensive
// conversions in one place. Malformed numerics degrade to zero, and
// malformed timestamps to the zero time — the load never fails on a
// single bad field.

func (r Record) String(field string) string {
	if s, ok := r[field].(string); ok {
		return s
	}
	return ""
}

func (r Record) Decimal(field string) decimal.Decimal {
	return types.ParseDecimal(r[field])
}

func (r Record) Time(field string) time.Time {
	s, ok := r[field].(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// TimePtr returns nil for absent or null timestamp fields, which is how
// the store represents "not yet paid" and "no due date".
func (r Record) TimePtr(field string) *time.Time {
	s, ok := r[field].(string)
	if !ok || s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

// FormatTime renders a timestamp the way the store expects it.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTimePtr renders an optional timestamp, mapping nil to nil so
// the stored field is an explicit null.
func FormatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return FormatTime(*t)
}
