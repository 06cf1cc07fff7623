package repository

import (
	"context"
	"time"

	"github.com/billfold/billfold/internal/domain/invoice"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/kvstore"
	"github.com/billfold/billfold/internal/logger"
	"github.com/shopspring/decimal"
)

type invoiceRepository struct {
	store  kvstore.Store
	logger *logger.Logger
}

// NewInvoiceRepository creates a record store backed invoice repository
func NewInvoiceRepository(store kvstore.Store, log *logger.Logger) invoice.Repository {
	return &invoiceRepository{store: store, logger: log}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	return r.store.Put(ctx, kvstore.CollectionInvoices, invoiceToRecord(inv))
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	invoices, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, ierr.WithError(invoice.ErrInvoiceNotFound).
		WithHintf("Invoice %s does not exist", id).
		Mark(ierr.ErrNotFound)
}

func (r *invoiceRepository) List(ctx context.Context) ([]*invoice.Invoice, error) {
	records, err := r.store.LoadAll(ctx, kvstore.CollectionInvoices)
	if err != nil {
		return nil, err
	}

	invoices := make([]*invoice.Invoice, 0, len(records))
	for _, record := range records {
		invoices = append(invoices, invoiceFromRecord(record))
	}
	return invoices, nil
}

func (r *invoiceRepository) UpdateTotals(ctx context.Context, id string, subtotal, total decimal.Decimal) error {
	return r.store.Update(ctx, kvstore.CollectionInvoices, id, kvstore.Record{
		"subtotal": subtotal.String(),
		"total":    total.String(),
	})
}

func (r *invoiceRepository) SetDatePaid(ctx context.Context, id string, datePaid *time.Time) error {
	return r.store.Update(ctx, kvstore.CollectionInvoices, id, kvstore.Record{
		"date_paid": kvstore.FormatTimePtr(datePaid),
	})
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, kvstore.CollectionInvoices, id)
}

func invoiceToRecord(inv *invoice.Invoice) kvstore.Record {
	return kvstore.Record{
		kvstore.KeyField: inv.ID,
		"uuid":           inv.ID,
		"created_date":   kvstore.FormatTime(inv.CreatedAt),
		"date_issued":    kvstore.FormatTime(inv.DateIssued),
		"date_due":       kvstore.FormatTimePtr(inv.DateDue),
		"date_paid":      kvstore.FormatTimePtr(inv.DatePaid),
		"currency":       inv.Currency,
		"discount":       inv.Discount.String(),
		"tax_percent":    inv.TaxPercent.String(),
		"shipping":       inv.Shipping.String(),
		"note":           inv.Note,
		"payee_uuid":     inv.Payee.ID,
		"payee_name":     inv.Payee.Name,
		"payee_email":    inv.Payee.Email,
		"payor_uuid":     inv.Payor.ID,
		"payor_name":     inv.Payor.Name,
		"payor_email":    inv.Payor.Email,
		"subtotal":       inv.Subtotal.String(),
		"total":          inv.Total.String(),
	}
}

func invoiceFromRecord(record kvstore.Record) *invoice.Invoice {
	return &invoice.Invoice{
		ID:         record.String("uuid"),
		CreatedAt:  record.Time("created_date"),
		DateIssued: record.Time("date_issued"),
		DateDue:    record.TimePtr("date_due"),
		DatePaid:   record.TimePtr("date_paid"),
		Currency:   record.String("currency"),
		Discount:   record.Decimal("discount"),
		TaxPercent: record.Decimal("tax_percent"),
		Shipping:   record.Decimal("shipping"),
		Note:       record.String("note"),
		Payee: invoice.Party{
			ID:    record.String("payee_uuid"),
			Name:  record.String("payee_name"),
			Email: record.String("payee_email"),
		},
		Payor: invoice.Party{
			ID:    record.String("payor_uuid"),
			Name:  record.String("payor_name"),
			Email: record.String("payor_email"),
		},
		Subtotal: record.Decimal("subtotal"),
		Total:    record.Decimal("total"),
	}
}
