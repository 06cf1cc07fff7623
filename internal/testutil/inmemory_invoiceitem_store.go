package testutil

import (
	"context"

	"github.com/billfold/billfold/internal/domain/invoice"
)

// InMemoryInvoiceItemStore implements invoice.ItemRepository
type InMemoryInvoiceItemStore struct {
	*InMemoryStore[*invoice.Item]
}

// NewInMemoryInvoiceItemStore creates a new in-memory line item store
func NewInMemoryInvoiceItemStore() *InMemoryInvoiceItemStore {
	return &InMemoryInvoiceItemStore{
		InMemoryStore: NewInMemoryStore[*invoice.Item](),
	}
}

func copyItem(item *invoice.Item) *invoice.Item {
	if item == nil {
		return nil
	}

	out := *item
	if item.Quantity != nil {
		q := *item.Quantity
		out.Quantity = &q
	}
	if item.UnitPrice != nil {
		p := *item.UnitPrice
		out.UnitPrice = &p
	}
	return &out
}

func (s *InMemoryInvoiceItemStore) Create(ctx context.Context, item *invoice.Item) error {
	return s.InMemoryStore.Create(ctx, item.ID, copyItem(item))
}

func (s *InMemoryInvoiceItemStore) List(ctx context.Context) ([]*invoice.Item, error) {
	return s.listWhere(ctx, nil)
}

func (s *InMemoryInvoiceItemStore) ListByInvoice(ctx context.Context, invoiceID string) ([]*invoice.Item, error) {
	return s.listWhere(ctx, func(ctx context.Context, item *invoice.Item) bool {
		return item.InvoiceID == invoiceID
	})
}

func (s *InMemoryInvoiceItemStore) DeleteByInvoice(ctx context.Context, invoiceID string) error {
	items, err := s.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := s.InMemoryStore.Delete(ctx, item.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *InMemoryInvoiceItemStore) listWhere(ctx context.Context, filterFn FilterFunc[*invoice.Item]) ([]*invoice.Item, error) {
	items, err := s.InMemoryStore.List(ctx, filterFn, func(i, j *invoice.Item) bool {
		return i.ID < j.ID
	})
	if err != nil {
		return nil, err
	}

	out := make([]*invoice.Item, len(items))
	for i, item := range items {
		out[i] = copyItem(item)
	}
	return out, nil
}
