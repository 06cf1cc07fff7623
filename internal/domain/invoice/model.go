package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// Party identifies one side of an invoice. The payee is the issuing
// user, the payor is the customer being billed.
type Party struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Invoice represents the invoice domain model. Subtotal and Total are
// a persisted snapshot of the computation engine's output; they are
// always recomputable from the line items and never treated as
// authoritative input.
type Invoice struct {
	ID         string          `json:"id"`
	DateIssued time.Time       `json:"date_issued"`
	DateDue    *time.Time      `json:"date_due,omitempty"`
	DatePaid   *time.Time      `json:"date_paid,omitempty"`
	Currency   string          `json:"currency"`
	Discount   decimal.Decimal `json:"discount"`
	TaxPercent decimal.Decimal `json:"tax_percent"`
	Shipping   decimal.Decimal `json:"shipping"`
	Note       string          `json:"note,omitempty"`
	Payee      Party           `json:"payee"`
	Payor      Party           `json:"payor"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
	Items      []*Item         `json:"items,omitempty"`
}

// IsPaid reports whether a payment date has been recorded.
func (i *Invoice) IsPaid() bool {
	return i.DatePaid != nil
}

// IsOverdue reports whether the invoice is unpaid, has a due date, and
// that due date is strictly before now.
func (i *Invoice) IsOverdue(now time.Time) bool {
	return !i.IsPaid() && i.DateDue != nil && i.DateDue.Before(now)
}

// Item is a single invoice line. Quantity and UnitPrice are pointers
// because a candidate coming from the form may omit either; the
// validation engine distinguishes "missing" from "zero" while the
// computation engine treats both as contributing nothing.
type Item struct {
	ID         string           `json:"id"`
	InvoiceID  string           `json:"invoice_id,omitempty"`
	ResourceID string           `json:"resource_id"`
	Name       string           `json:"name"`
	Quantity   *decimal.Decimal `json:"quantity"`
	UnitPrice  *decimal.Decimal `json:"unit_price"`
}

// Candidate is an invoice as submitted by the user, before validation.
// Dates are kept as raw strings so unparseable input surfaces as a
// validation failure instead of being lost at the decoding boundary.
type Candidate struct {
	ID         string
	Payee      Party
	Payor      Party
	Currency   string
	DateIssued string
	DateDue    string
	Note       string
	Discount   decimal.Decimal
	TaxPercent decimal.Decimal
	Shipping   decimal.Decimal
	Items      []*Item
}
