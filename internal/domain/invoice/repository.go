package invoice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository defines the interface for invoice persistence operations
type Repository interface {
	// Create inserts a new invoice record
	Create(ctx context.Context, invoice *Invoice) error

	// Get retrieves an invoice by ID
	Get(ctx context.Context, id string) (*Invoice, error)

	// List retrieves every invoice record
	List(ctx context.Context) ([]*Invoice, error)

	// UpdateTotals refreshes the persisted subtotal/total snapshot
	UpdateTotals(ctx context.Context, id string, subtotal, total decimal.Decimal) error

	// SetDatePaid records or clears an invoice's payment date
	SetDatePaid(ctx context.Context, id string, datePaid *time.Time) error

	// Delete removes an invoice record
	Delete(ctx context.Context, id string) error
}

// ItemRepository defines the interface for invoice line item persistence
type ItemRepository interface {
	// Create inserts a new line item record
	Create(ctx context.Context, item *Item) error

	// List retrieves every line item record across all invoices
	List(ctx context.Context) ([]*Item, error)

	// ListByInvoice retrieves the line items belonging to one invoice
	ListByInvoice(ctx context.Context, invoiceID string) ([]*Item, error)

	// DeleteByInvoice removes every line item belonging to one invoice
	DeleteByInvoice(ctx context.Context, invoiceID string) error
}
