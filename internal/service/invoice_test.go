package service

import (
	"strings"
	"testing"
	"time"

	"github.com/billfold/billfold/internal/api/dto"
	"github.com/billfold/billfold/internal/domain/invoice"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/testutil"
	"github.com/billfold/billfold/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service InvoiceService
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.service = NewInvoiceService(ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		InvoiceRepo:     stores.InvoiceRepo,
		InvoiceItemRepo: stores.InvoiceItemRepo,
		ResourceRepo:    stores.ResourceRepo,
		CustomerRepo:    stores.CustomerRepo,
		SettingsRepo:    stores.SettingsRepo,
	})
}

func (s *InvoiceServiceSuite) validRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		ID:         "inv-1",
		Payee:      dto.PartyRequest{ID: s.GetUserID(), Name: "Ada Lovelace"},
		Payor:      dto.PartyRequest{ID: "cust-1", Name: "Acme Corp", Email: "billing@acme.test"},
		Currency:   "USD",
		DateIssued: "2026-08-01",
		DateDue:    "2026-08-29",
		Items: []dto.InvoiceItemRequest{
			{
				ResourceID: "res-1",
				Name:       "Consulting",
				Quantity:   lo.ToPtr(decimal.NewFromInt(2)),
				UnitPrice:  lo.ToPtr(decimal.RequireFromString("99.50")),
			},
		},
	}
}

func (s *InvoiceServiceSuite) TestCreateInvoice() {
	resp, err := s.service.CreateInvoice(s.GetContext(), s.validRequest())
	s.NoError(err)
	s.NotNil(resp)
	s.True(resp.Total.Equal(decimal.NewFromInt(199)), "got %s", resp.Total)

	// invoice persisted with the computed snapshot
	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), "inv-1")
	s.NoError(err)
	s.True(stored.Subtotal.Equal(decimal.NewFromInt(199)))
	s.Equal("Acme Corp", stored.Payor.Name)

	// line items persisted with minted identities
	items, err := s.GetStores().InvoiceItemRepo.ListByInvoice(s.GetContext(), "inv-1")
	s.NoError(err)
	s.Len(items, 1)
	s.NotEmpty(items[0].ID)
	s.Equal("res-1", items[0].ResourceID)

	// side collections refreshed
	customers, err := s.GetStores().CustomerRepo.List(s.GetContext())
	s.NoError(err)
	s.Len(customers, 1)
	s.Equal("Acme Corp", customers[0].Name)

	resources, err := s.GetStores().ResourceRepo.List(s.GetContext())
	s.NoError(err)
	s.Len(resources, 1)
	s.True(resources[0].UnitPrice.Equal(decimal.RequireFromString("99.50")))

	defaults, err := s.GetStores().SettingsRepo.Get(s.GetContext(), s.GetUserID())
	s.NoError(err)
	s.Equal("Ada Lovelace", defaults.Name)
	s.Equal("USD", defaults.Currency)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceMintsMissingIDs() {
	req := s.validRequest()
	req.ID = ""
	req.Payor.ID = ""

	resp, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)
	s.NotEmpty(resp.ID)
	s.NotEmpty(resp.Payor.ID)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceRejectsInvalidCandidate() {
	req := s.validRequest()
	req.Payee.Name = ""
	req.Items[0].Quantity = nil

	_, err := s.service.CreateInvoice(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))

	var ve *invoice.ValidationError
	s.True(ierr.As(err, &ve))
	s.Len(ve.Errors, 2)

	// nothing persisted on a rejected candidate
	invoices, err := s.GetStores().InvoiceRepo.List(s.GetContext())
	s.NoError(err)
	s.Empty(invoices)
	items, err := s.GetStores().InvoiceItemRepo.List(s.GetContext())
	s.NoError(err)
	s.Empty(items)
}

func (s *InvoiceServiceSuite) TestComputeInvoiceTotalsDoesNotPersist() {
	resp, err := s.service.ComputeInvoiceTotals(s.GetContext(), s.validRequest())
	s.NoError(err)
	s.True(resp.Total.Equal(decimal.NewFromInt(199)))
	s.Equal("USD", resp.Currency)

	invoices, err := s.GetStores().InvoiceRepo.List(s.GetContext())
	s.NoError(err)
	s.Empty(invoices)
}

func (s *InvoiceServiceSuite) TestComputeInvoiceTotalsToleratesBrokenInput() {
	req := s.validRequest()
	req.Payee.Name = ""
	req.DateIssued = "garbage"
	req.Items[0].Quantity = nil

	resp, err := s.service.ComputeInvoiceTotals(s.GetContext(), req)
	s.NoError(err)
	s.True(resp.Total.IsZero())
}

func (s *InvoiceServiceSuite) TestListInvoicesSortsAndRefreshesTotals() {
	req := s.validRequest()
	_, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)

	later := s.validRequest()
	later.ID = "inv-2"
	later.DateIssued = "2026-08-20"
	later.Items[0].UnitPrice = lo.ToPtr(decimal.NewFromInt(10))
	_, err = s.service.CreateInvoice(s.GetContext(), later)
	s.NoError(err)

	// invalidate the persisted snapshot behind the service's back
	err = s.GetStores().InvoiceRepo.UpdateTotals(s.GetContext(), "inv-1", decimal.Zero, decimal.Zero)
	s.NoError(err)

	resp, err := s.service.ListInvoices(s.GetContext())
	s.NoError(err)
	s.Equal(2, resp.Total)

	// newest issue date first
	s.Equal("inv-2", resp.Items[0].ID)
	s.Equal("inv-1", resp.Items[1].ID)

	// stale totals recomputed and written back
	s.True(resp.Items[1].Total.Equal(decimal.NewFromInt(199)))
	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), "inv-1")
	s.NoError(err)
	s.True(stored.Total.Equal(decimal.NewFromInt(199)))
}

func (s *InvoiceServiceSuite) TestGetInvoice() {
	_, err := s.service.CreateInvoice(s.GetContext(), s.validRequest())
	s.NoError(err)

	resp, err := s.service.GetInvoice(s.GetContext(), "inv-1")
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.True(resp.Total.Equal(decimal.NewFromInt(199)))
}

func (s *InvoiceServiceSuite) TestGetInvoiceNotFound() {
	_, err := s.service.GetInvoice(s.GetContext(), "missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestSetPaymentDate() {
	_, err := s.service.CreateInvoice(s.GetContext(), s.validRequest())
	s.NoError(err)

	paid := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	s.NoError(s.service.SetPaymentDate(s.GetContext(), "inv-1", &paid))

	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), "inv-1")
	s.NoError(err)
	s.NotNil(stored.DatePaid)
	s.True(stored.DatePaid.Equal(paid))

	// clearing the date marks the invoice unpaid again
	s.NoError(s.service.SetPaymentDate(s.GetContext(), "inv-1", nil))
	stored, err = s.GetStores().InvoiceRepo.Get(s.GetContext(), "inv-1")
	s.NoError(err)
	s.Nil(stored.DatePaid)
}

func (s *InvoiceServiceSuite) TestSetPaymentDateMissingInvoice() {
	paid := time.Now().UTC()
	err := s.service.SetPaymentDate(s.GetContext(), "missing", &paid)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestDeleteInvoiceCascades() {
	_, err := s.service.CreateInvoice(s.GetContext(), s.validRequest())
	s.NoError(err)

	s.NoError(s.service.DeleteInvoice(s.GetContext(), "inv-1"))

	_, err = s.GetStores().InvoiceRepo.Get(s.GetContext(), "inv-1")
	s.True(ierr.IsNotFound(err))

	items, err := s.GetStores().InvoiceItemRepo.List(s.GetContext())
	s.NoError(err)
	s.Empty(items)
}

func (s *InvoiceServiceSuite) TestNewDraftInvoice() {
	_, err := s.service.CreateInvoice(s.GetContext(), s.validRequest())
	s.NoError(err)

	resp, err := s.service.NewDraftInvoice(s.GetContext(), s.GetUserID())
	s.NoError(err)

	draft := resp.Invoice
	s.NotEmpty(draft.ID)
	s.Equal("Ada Lovelace", draft.Payee.Name)
	s.Equal("USD", draft.Currency)
	s.NotEmpty(draft.Payor.ID)
	s.Empty(draft.Payor.Name)

	issued, ok := types.ParseDate(draft.DateIssued)
	s.True(ok)
	due, ok := types.ParseDate(draft.DateDue)
	s.True(ok)
	s.Equal(types.AddDays(issued, s.GetConfig().Billing.DueInDays), due)

	s.Len(draft.Items, 1)
	s.True(draft.Items[0].Quantity.Equal(decimal.NewFromInt(1)))
	s.True(draft.Items[0].UnitPrice.IsZero())
}

func (s *InvoiceServiceSuite) TestNewDraftInvoiceWithoutSavedDefaults() {
	resp, err := s.service.NewDraftInvoice(s.GetContext(), s.GetUserID())
	s.NoError(err)

	s.Empty(resp.Invoice.Payee.Name)
	s.Equal(s.GetConfig().Billing.DefaultCurrency, resp.Invoice.Currency)
}

func (s *InvoiceServiceSuite) TestEmailInvoiceLink() {
	resp, err := s.service.EmailInvoiceLink(s.GetContext(), s.validRequest())
	s.NoError(err)

	s.True(strings.HasPrefix(resp.Link, "mailto:billing@acme.test?subject="))
	s.Contains(resp.Link, "Invoice%20from%20Ada%20Lovelace%20for%20%24199.00")
	s.Contains(resp.Link, "Consulting")
	s.NotContains(resp.Link, "+")
}

func (s *InvoiceServiceSuite) TestEmailInvoiceLinkSkipsUnpricedLines() {
	req := s.validRequest()
	req.Items = append(req.Items, dto.InvoiceItemRequest{
		ResourceID: "res-2",
		Name:       "Mystery",
	})

	resp, err := s.service.EmailInvoiceLink(s.GetContext(), req)
	s.NoError(err)
	s.NotContains(resp.Link, "Mystery")
}
