package dto

import (
	"github.com/billfold/billfold/internal/domain/invoice"
	"github.com/billfold/billfold/internal/types"
	"github.com/billfold/billfold/internal/validator"
	"github.com/shopspring/decimal"
)

// PartyRequest identifies one side of an invoice in a request payload
type PartyRequest struct {
	// id is the party's identity; generated when empty
	ID string `json:"id"`

	// name is the display name printed on the invoice
	Name string `json:"name"`

	// email is optional contact information
	Email string `json:"email,omitempty"`
}

// InvoiceItemRequest is a single line of a submitted invoice
type InvoiceItemRequest struct {
	// resource_id keys the "last used price" catalog entry for this line
	ResourceID string `json:"resource_id"`

	// name is the line item's display name
	Name string `json:"name"`

	// quantity may be omitted; the validation engine reports it as missing
	Quantity *decimal.Decimal `json:"quantity"`

	// unit_price may be omitted; the validation engine reports it as missing
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest represents the request payload for creating a new
// invoice. Dates travel as strings so malformed input reaches the
// validation engine instead of dying at the JSON boundary.
type CreateInvoiceRequest struct {
	// id is the invoice identity; generated when empty
	ID string `json:"id"`

	// payee is the issuing user
	Payee PartyRequest `json:"payee"`

	// payor is the customer being billed
	Payor PartyRequest `json:"payor"`

	// currency is the three-letter ISO currency code for the invoice
	Currency string `json:"currency" validate:"omitempty,len=3"`

	// date_issued is the issue date, YYYY-MM-DD or RFC3339
	DateIssued string `json:"date_issued"`

	// date_due is the optional due date
	DateDue string `json:"date_due,omitempty"`

	// note is free text printed at the bottom of the invoice
	Note string `json:"note,omitempty"`

	// discount is a flat amount subtracted from the subtotal
	Discount decimal.Decimal `json:"discount"`

	// tax_percent is applied to the discounted subtotal
	TaxPercent decimal.Decimal `json:"tax_percent"`

	// shipping is added after tax
	Shipping decimal.Decimal `json:"shipping"`

	// items are the invoice lines
	Items []InvoiceItemRequest `json:"items"`
}

func (r *CreateInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToCandidate converts the request into a domain candidate, minting
// identities for the invoice and payor when the client did not.
func (r *CreateInvoiceRequest) ToCandidate() *invoice.Candidate {
	id := r.ID
	if id == "" {
		id = types.GenerateUUID()
	}
	payorID := r.Payor.ID
	if payorID == "" {
		payorID = types.GenerateUUID()
	}

	items := make([]*invoice.Item, len(r.Items))
	for i, item := range r.Items {
		resourceID := item.ResourceID
		if resourceID == "" {
			resourceID = types.GenerateUUID()
		}
		items[i] = &invoice.Item{
			ResourceID: resourceID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		}
	}

	return &invoice.Candidate{
		ID:         id,
		Payee:      invoice.Party(r.Payee),
		Payor:      invoice.Party{ID: payorID, Name: r.Payor.Name, Email: r.Payor.Email},
		Currency:   r.Currency,
		DateIssued: r.DateIssued,
		DateDue:    r.DateDue,
		Note:       r.Note,
		Discount:   r.Discount,
		TaxPercent: r.TaxPercent,
		Shipping:   r.Shipping,
		Items:      items,
	}
}

// InvoiceResponse wraps the invoice domain model for API responses
type InvoiceResponse struct {
	*invoice.Invoice
}

// ListInvoicesResponse is the invoice dashboard listing
type ListInvoicesResponse struct {
	Items []*InvoiceResponse `json:"items"`
	Total int                `json:"total"`
}

// InvoiceTotalsResponse is the computed totals preview for an unsaved
// invoice
type InvoiceTotalsResponse struct {
	invoice.Totals
	Currency string `json:"currency"`
}

// DraftInvoiceResponse is a new empty invoice prefilled from the user's
// saved defaults
type DraftInvoiceResponse struct {
	Invoice *CreateInvoiceRequest `json:"invoice"`
}

// SetPaymentDateRequest records or clears an invoice payment date. A
// null date_paid marks the invoice unpaid again.
type SetPaymentDateRequest struct {
	DatePaid *string `json:"date_paid"`
}

// EmailLinkResponse carries a prefilled mailto URL for an invoice
type EmailLinkResponse struct {
	Link string `json:"link"`
}
