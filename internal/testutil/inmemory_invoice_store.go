package testutil

import (
	"context"
	"time"

	"github.com/billfold/billfold/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
}

// NewInMemoryInvoiceStore creates a new in-memory invoice store
func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
	}
}

// Helper to copy invoice
func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}

	out := *inv
	if inv.DateDue != nil {
		due := *inv.DateDue
		out.DateDue = &due
	}
	if inv.DatePaid != nil {
		paid := *inv.DatePaid
		out.DatePaid = &paid
	}
	// line items live in their own store
	out.Items = nil
	return &out
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	return s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) List(ctx context.Context) ([]*invoice.Invoice, error) {
	invoices, err := s.InMemoryStore.List(ctx, nil, func(i, j *invoice.Invoice) bool {
		return i.ID < j.ID
	})
	if err != nil {
		return nil, err
	}

	out := make([]*invoice.Invoice, len(invoices))
	for i, inv := range invoices {
		out[i] = copyInvoice(inv)
	}
	return out, nil
}

func (s *InMemoryInvoiceStore) UpdateTotals(ctx context.Context, id string, subtotal, total decimal.Decimal) error {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}

	updated := copyInvoice(inv)
	updated.Subtotal = subtotal
	updated.Total = total
	return s.InMemoryStore.Update(ctx, id, updated)
}

func (s *InMemoryInvoiceStore) SetDatePaid(ctx context.Context, id string, datePaid *time.Time) error {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return err
	}

	updated := copyInvoice(inv)
	updated.DatePaid = datePaid
	return s.InMemoryStore.Update(ctx, id, updated)
}

func (s *InMemoryInvoiceStore) Delete(ctx context.Context, id string) error {
	return s.InMemoryStore.Delete(ctx, id)
}
