package resource

import "github.com/shopspring/decimal"

// Resource is a reusable product/service catalog entry. It is keyed by
// the per-line resource ID and acts as a denormalized "last used price"
// cache, upserted whenever an item is saved.
type Resource struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
