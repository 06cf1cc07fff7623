package invoice

import "github.com/shopspring/decimal"

// The computation engine. Every function here is pure and uses exact
// decimal arithmetic; binary floats never touch monetary values.
// Out-of-range inputs degrade to zero-contribution instead of failing:
// rejecting them is the validation engine's responsibility, and the two
// policies apply independently.

// Totals is the full output of one computation pass over an invoice.
type Totals struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	SubtotalAfterDiscount decimal.Decimal `json:"subtotal_after_discount"`
	Tax                   decimal.Decimal `json:"tax"`
	Total                 decimal.Decimal `json:"total"`
}

// ItemAmount returns quantity × unit price when both are present and
// strictly positive, else zero.
func ItemAmount(item *Item) decimal.Decimal {
	if item == nil || item.Quantity == nil || item.UnitPrice == nil {
		return decimal.Zero
	}
	if !item.Quantity.IsPositive() || !item.UnitPrice.IsPositive() {
		return decimal.Zero
	}
	return item.Quantity.Mul(*item.UnitPrice)
}

// Subtotal sums the amounts of all items whose amount is positive.
// Non-positive amounts are skipped entirely, not summed as zero.
func Subtotal(items []*Item) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		amount := ItemAmount(item)
		if amount.IsPositive() {
			subtotal = subtotal.Add(amount)
		}
	}
	return subtotal
}

// SubtotalAfterDiscount subtracts the discount, flooring at zero. A
// negative discount contributes nothing here; validation rejects it
// upstream.
func SubtotalAfterDiscount(subtotal, discount decimal.Decimal) decimal.Decimal {
	if !discount.IsPositive() {
		discount = decimal.Zero
	}
	afterDiscount := subtotal.Sub(discount)
	if afterDiscount.IsNegative() {
		return decimal.Zero
	}
	return afterDiscount
}

// Tax returns subtotalAfterDiscount × taxPercent / 100, or zero for a
// non-positive tax percent.
func Tax(taxPercent, subtotalAfterDiscount decimal.Decimal) decimal.Decimal {
	if !taxPercent.IsPositive() {
		return decimal.Zero
	}
	return subtotalAfterDiscount.Mul(taxPercent.Div(decimal.NewFromInt(100)))
}

// Total sums the discounted subtotal, tax and shipping. Negative
// shipping contributes nothing.
func Total(subtotalAfterDiscount, tax, shipping decimal.Decimal) decimal.Decimal {
	if !shipping.IsPositive() {
		shipping = decimal.Zero
	}
	return subtotalAfterDiscount.Add(tax).Add(shipping)
}

// ComputeTotals composes the four calculations left to right.
func ComputeTotals(items []*Item, discount, taxPercent, shipping decimal.Decimal) Totals {
	subtotal := Subtotal(items)
	afterDiscount := SubtotalAfterDiscount(subtotal, discount)
	tax := Tax(taxPercent, afterDiscount)
	return Totals{
		Subtotal:              subtotal,
		SubtotalAfterDiscount: afterDiscount,
		Tax:                   tax,
		Total:                 Total(afterDiscount, tax, shipping),
	}
}
