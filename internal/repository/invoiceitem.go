package repository

import (
	"context"

	"github.com/billfold/billfold/internal/domain/invoice"
	"github.com/billfold/billfold/internal/kvstore"
	"github.com/billfold/billfold/internal/logger"
	"github.com/samber/lo"
)

type invoiceItemRepository struct {
	store  kvstore.Store
	logger *logger.Logger
}

// NewInvoiceItemRepository creates a record store backed line item repository
func NewInvoiceItemRepository(store kvstore.Store, log *logger.Logger) invoice.ItemRepository {
	return &invoiceItemRepository{store: store, logger: log}
}

func (r *invoiceItemRepository) Create(ctx context.Context, item *invoice.Item) error {
	return r.store.Put(ctx, kvstore.CollectionInvoiceItems, itemToRecord(item))
}

func (r *invoiceItemRepository) List(ctx context.Context) ([]*invoice.Item, error) {
	records, err := r.store.LoadAll(ctx, kvstore.CollectionInvoiceItems)
	if err != nil {
		return nil, err
	}

	items := make([]*invoice.Item, 0, len(records))
	for _, record := range records {
		items = append(items, itemFromRecord(record))
	}
	return items, nil
}

func (r *invoiceItemRepository) ListByInvoice(ctx context.Context, invoiceID string) ([]*invoice.Item, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(items, func(item *invoice.Item, _ int) bool {
		return item.InvoiceID == invoiceID
	}), nil
}

func (r *invoiceItemRepository) DeleteByInvoice(ctx context.Context, invoiceID string) error {
	items, err := r.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := r.store.Delete(ctx, kvstore.CollectionInvoiceItems, item.ID); err != nil {
			return err
		}
	}
	return nil
}

func itemToRecord(item *invoice.Item) kvstore.Record {
	record := kvstore.Record{
		kvstore.KeyField: item.ID,
		"invoice_uuid":   item.InvoiceID,
		"resource_uuid":  item.ResourceID,
		"item_name":      item.Name,
	}
	if item.Quantity != nil {
		record["quantity"] = item.Quantity.String()
	}
	if item.UnitPrice != nil {
		record["unit_price"] = item.UnitPrice.String()
	}
	return record
}

func itemFromRecord(record kvstore.Record) *invoice.Item {
	return &invoice.Item{
		ID:         record.Key(),
		InvoiceID:  record.String("invoice_uuid"),
		ResourceID: record.String("resource_uuid"),
		Name:       record.String("item_name"),
		Quantity:   lo.ToPtr(record.Decimal("quantity")),
		UnitPrice:  lo.ToPtr(record.Decimal("unit_price")),
	}
}
