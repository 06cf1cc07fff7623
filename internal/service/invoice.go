package service

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/billfold/billfold/internal/api/dto"
	"github.com/billfold/billfold/internal/domain/customer"
	"github.com/billfold/billfold/internal/domain/invoice"
	"github.com/billfold/billfold/internal/domain/resource"
	"github.com/billfold/billfold/internal/domain/settings"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InvoiceService owns the invoice lifecycle: computing totals,
// validating and persisting candidates, payment state, and deletion.
type InvoiceService interface {
	ComputeInvoiceTotals(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceTotalsResponse, error)
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context) (*dto.ListInvoicesResponse, error)
	NewDraftInvoice(ctx context.Context, userID string) (*dto.DraftInvoiceResponse, error)
	SetPaymentDate(ctx context.Context, id string, datePaid *time.Time) error
	DeleteInvoice(ctx context.Context, id string) error
	EmailInvoiceLink(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.EmailLinkResponse, error)
	GetCustomers(ctx context.Context) ([]*customer.Customer, error)
	GetProducts(ctx context.Context) ([]*resource.Resource, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

// ComputeInvoiceTotals runs the computation engine over an unsaved
// candidate so the form can preview subtotal, tax and total. It never
// fails on malformed numerics; those degrade to zero-contribution and
// are reported separately by validation.
func (s *invoiceService) ComputeInvoiceTotals(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceTotalsResponse, error) {
	c := req.ToCandidate()
	totals := invoice.ComputeTotals(c.Items, c.Discount, c.TaxPercent, c.Shipping)
	return &dto.InvoiceTotalsResponse{
		Totals:   totals,
		Currency: c.Currency,
	}, nil
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.ToCandidate()

	// Every rule runs; the failure carries the complete violation set
	// so the form can highlight everything at once. An invalid invoice
	// is never partially persisted.
	if err := c.Validate(); err != nil {
		var ve *invoice.ValidationError
		if ierr.As(err, &ve) {
			return nil, ierr.WithError(ve).
				WithHint("Invoice validation failed").
				WithReportableDetails(ve.Details()).
				Mark(ierr.ErrValidation)
		}
		return nil, err
	}

	dateIssued, _ := types.ParseDate(c.DateIssued)
	var dateDue *time.Time
	if c.DateDue != "" {
		due, _ := types.ParseDate(c.DateDue)
		dateDue = &due
	}

	totals := invoice.ComputeTotals(c.Items, c.Discount, c.TaxPercent, c.Shipping)

	inv := &invoice.Invoice{
		ID:         c.ID,
		DateIssued: dateIssued,
		DateDue:    dateDue,
		Currency:   c.Currency,
		Discount:   c.Discount,
		TaxPercent: c.TaxPercent,
		Shipping:   c.Shipping,
		Note:       c.Note,
		Payee:      c.Payee,
		Payor:      c.Payor,
		Subtotal:   totals.Subtotal,
		Total:      totals.Total,
		CreatedAt:  dateIssued,
	}

	// Saving an invoice also refreshes the three denormalized side
	// collections: the user's defaults, the payor directory, and the
	// per-resource last used price cache.
	if err := s.upsertUserDefaults(ctx, c); err != nil {
		return nil, err
	}
	if err := s.CustomerRepo.Upsert(ctx, &customer.Customer{
		ID:    c.Payor.ID,
		Name:  c.Payor.Name,
		Email: c.Payor.Email,
	}); err != nil {
		return nil, err
	}

	for _, item := range c.Items {
		if err := s.ResourceRepo.Upsert(ctx, &resource.Resource{
			ID:        item.ResourceID,
			Name:      item.Name,
			UnitPrice: lo.FromPtr(item.UnitPrice),
		}); err != nil {
			return nil, err
		}

		item.ID = types.GenerateUUID()
		item.InvoiceID = inv.ID
		if err := s.InvoiceItemRepo.Create(ctx, item); err != nil {
			return nil, err
		}
	}

	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	inv.Items = c.Items

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"payor_id", inv.Payor.ID,
		"total", inv.Total)

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	if id == "" {
		return nil, ierr.NewError("invoice ID is required").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation)
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.InvoiceItemRepo.ListByInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Items = items

	totals := invoice.ComputeTotals(items, inv.Discount, inv.TaxPercent, inv.Shipping)
	inv.Subtotal = totals.Subtotal
	inv.Total = totals.Total

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

// ListInvoices returns every invoice, newest issue date first. The
// persisted subtotal/total snapshot is a cache of the computation
// engine's output; it is re-derived from the line items here and
// written back when stale.
func (s *invoiceService) ListInvoices(ctx context.Context) (*dto.ListInvoicesResponse, error) {
	invoices, err := s.InvoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.InvoiceItemRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	itemsByInvoice := lo.GroupBy(items, func(item *invoice.Item) string {
		return item.InvoiceID
	})

	for _, inv := range invoices {
		inv.Items = itemsByInvoice[inv.ID]
		totals := invoice.ComputeTotals(inv.Items, inv.Discount, inv.TaxPercent, inv.Shipping)
		if !inv.Subtotal.Equal(totals.Subtotal) || !inv.Total.Equal(totals.Total) {
			if err := s.InvoiceRepo.UpdateTotals(ctx, inv.ID, totals.Subtotal, totals.Total); err != nil {
				return nil, err
			}
		}
		inv.Subtotal = totals.Subtotal
		inv.Total = totals.Total
	}

	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].DateIssued.After(invoices[j].DateIssued)
	})

	return &dto.ListInvoicesResponse{
		Items: lo.Map(invoices, func(inv *invoice.Invoice, _ int) *dto.InvoiceResponse {
			return &dto.InvoiceResponse{Invoice: inv}
		}),
		Total: len(invoices),
	}, nil
}

// NewDraftInvoice builds an empty invoice prefilled from the user's
// saved defaults: fresh invoice and payor identities, today's issue
// date, the configured payment term, and one blank line.
func (s *invoiceService) NewDraftInvoice(ctx context.Context, userID string) (*dto.DraftInvoiceResponse, error) {
	name := ""
	currency := s.Config.Billing.DefaultCurrency

	defaults, err := s.SettingsRepo.Get(ctx, userID)
	switch {
	case err == nil:
		name = defaults.Name
		if defaults.Currency != "" {
			currency = defaults.Currency
		}
	case ierr.IsNotFound(err):
		// first invoice; config defaults apply
	default:
		return nil, err
	}

	issued := time.Now().UTC()
	due := types.AddDays(issued, s.Config.Billing.DueInDays)

	draft := &dto.CreateInvoiceRequest{
		ID:         types.GenerateUUID(),
		Payee:      dto.PartyRequest{ID: userID, Name: name},
		Payor:      dto.PartyRequest{ID: types.GenerateUUID()},
		Currency:   currency,
		DateIssued: issued.Format("2006-01-02"),
		DateDue:    due.Format("2006-01-02"),
		Discount:   decimal.Zero,
		TaxPercent: decimal.Zero,
		Shipping:   decimal.Zero,
		Items: []dto.InvoiceItemRequest{
			{
				ResourceID: types.GenerateUUID(),
				Quantity:   lo.ToPtr(decimal.NewFromInt(1)),
				UnitPrice:  lo.ToPtr(decimal.Zero),
			},
		},
	}

	return &dto.DraftInvoiceResponse{Invoice: draft}, nil
}

func (s *invoiceService) SetPaymentDate(ctx context.Context, id string, datePaid *time.Time) error {
	if id == "" {
		return ierr.NewError("invoice ID is required").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation)
	}

	if _, err := s.InvoiceRepo.Get(ctx, id); err != nil {
		return err
	}

	return s.InvoiceRepo.SetDatePaid(ctx, id, datePaid)
}

// DeleteInvoice removes an invoice and cascades to its line items.
func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	if id == "" {
		return ierr.NewError("invoice ID is required").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation)
	}

	if err := s.InvoiceItemRepo.DeleteByInvoice(ctx, id); err != nil {
		return err
	}
	if err := s.InvoiceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.Logger.Infow("deleted invoice", "invoice_id", id)
	return nil
}

// EmailInvoiceLink builds a mailto URL whose subject and body summarize
// the invoice: computed total, due date, and the printable line items.
func (s *invoiceService) EmailInvoiceLink(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.EmailLinkResponse, error) {
	c := req.ToCandidate()
	totals := invoice.ComputeTotals(c.Items, c.Discount, c.TaxPercent, c.Shipping)

	symbol := types.GetCurrencySymbol(c.Currency)
	total := symbol + types.FormatAmount(totals.Total)

	dueDate := ""
	if due, ok := types.ParseDate(c.DateDue); ok {
		dueDate = " due " + due.Format("1/2/2006")
	}

	var lineItems strings.Builder
	for _, item := range c.Items {
		if item.Quantity == nil || item.UnitPrice == nil ||
			item.Quantity.IsNegative() || item.UnitPrice.IsNegative() {
			continue
		}
		fmt.Fprintf(&lineItems, "%s (%s x %s%s)\n",
			item.Name, item.Quantity.String(), symbol, types.FormatAmount(*item.UnitPrice))
	}

	note := c.Note
	if note == "" {
		note = "Thank you!"
	}

	subject := fmt.Sprintf("Invoice from %s for %s", c.Payee.Name, total)
	body := fmt.Sprintf("Hi %s,\n\nHere is an invoice for %s%s.\n\n%s\n%s\n\n%s",
		c.Payor.Name, total, dueDate, lineItems.String(), note, c.Payee.Name)

	link := fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		c.Payor.Email, escapeMailtoPart(subject), escapeMailtoPart(body))

	return &dto.EmailLinkResponse{Link: link}, nil
}

func (s *invoiceService) GetCustomers(ctx context.Context) ([]*customer.Customer, error) {
	return s.CustomerRepo.List(ctx)
}

func (s *invoiceService) GetProducts(ctx context.Context) ([]*resource.Resource, error) {
	return s.ResourceRepo.List(ctx)
}

func (s *invoiceService) upsertUserDefaults(ctx context.Context, c *invoice.Candidate) error {
	return s.SettingsRepo.Upsert(ctx, &settings.UserSettings{
		ID:        c.Payee.ID,
		Name:      c.Payee.Name,
		Currency:  c.Currency,
		CreatedAt: time.Now().UTC(),
	})
}

// escapeMailtoPart percent-encodes a mailto subject/body component.
// QueryEscape uses + for spaces, which mail clients do not decode.
func escapeMailtoPart(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
