package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/billfold/billfold/internal/api/dto"
	"github.com/billfold/billfold/internal/domain/invoice"
	"github.com/billfold/billfold/internal/domain/settings"
	"github.com/billfold/billfold/internal/testutil"
	"github.com/billfold/billfold/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ReportingService
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceSuite))
}

func (s *ReportingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.service = NewReportingService(ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		InvoiceRepo:     stores.InvoiceRepo,
		InvoiceItemRepo: stores.InvoiceItemRepo,
		ResourceRepo:    stores.ResourceRepo,
		CustomerRepo:    stores.CustomerRepo,
		SettingsRepo:    stores.SettingsRepo,
	})
}

type seedSpec struct {
	id       string
	payor    string
	item     string
	amount   string
	issued   time.Time
	datePaid *time.Time
	dateDue  *time.Time
}

// seed persists an invoice with a single line worth spec.amount. The
// stored totals are deliberately zero; reports must recompute them
// from the line items.
func (s *ReportingServiceSuite) seed(spec seedSpec) {
	inv := &invoice.Invoice{
		ID:         spec.id,
		DateIssued: spec.issued,
		DateDue:    spec.dateDue,
		DatePaid:   spec.datePaid,
		Currency:   "USD",
		Payee:      invoice.Party{ID: s.GetUserID(), Name: "Ada Lovelace"},
		Payor:      invoice.Party{ID: spec.payor + "-id", Name: spec.payor},
	}
	s.NoError(s.GetStores().InvoiceRepo.Create(s.GetContext(), inv))

	s.NoError(s.GetStores().InvoiceItemRepo.Create(s.GetContext(), &invoice.Item{
		ID:         types.GenerateUUID(),
		InvoiceID:  spec.id,
		ResourceID: spec.item + "-res",
		Name:       spec.item,
		Quantity:   lo.ToPtr(decimal.NewFromInt(1)),
		UnitPrice:  lo.ToPtr(decimal.RequireFromString(spec.amount)),
	}))
}

// midMonth returns the 15th of the month `offset` months away, which is
// always strictly inside the reporting window.
func (s *ReportingServiceSuite) midMonth(offset int) time.Time {
	start, _ := types.MonthWindow(s.GetNow(), offset)
	return start.AddDate(0, 0, 14)
}

func (s *ReportingServiceSuite) TestDashboardEmptyStore() {
	resp, err := s.service.Dashboard(s.GetContext(), s.GetUserID())
	s.NoError(err)

	s.True(resp.SuggestCreateInvoice)
	s.Equal("USD", resp.Currency)
	s.Equal(0, resp.CustomerCount)

	s.Len(resp.MonthlySales.Sales, 3)
	s.Len(resp.MonthlySales.Months, 3)
	for _, sum := range resp.MonthlySales.Sales {
		s.True(sum.IsZero())
	}

	s.Empty(resp.SalesByCustomer.Names)
	s.Empty(resp.SalesByProduct.Names)

	s.True(resp.Totals.Total.IsZero())
	s.True(resp.Totals.Received.IsZero())
	s.True(resp.Totals.Owed.IsZero())
	s.True(resp.Totals.Overdue.IsZero())
}

func (s *ReportingServiceSuite) TestDashboardCurrencyFromSettings() {
	s.NoError(s.GetStores().SettingsRepo.Upsert(s.GetContext(), &settings.UserSettings{
		ID:       s.GetUserID(),
		Name:     "Ada Lovelace",
		Currency: "EUR",
	}))

	resp, err := s.service.Dashboard(s.GetContext(), s.GetUserID())
	s.NoError(err)
	s.Equal("EUR", resp.Currency)
}

func (s *ReportingServiceSuite) TestMonthlySales() {
	s.seed(seedSpec{id: "inv-1", payor: "Acme", item: "Widget", amount: "100", issued: s.midMonth(0)})
	s.seed(seedSpec{id: "inv-2", payor: "Acme", item: "Widget", amount: "50", issued: s.midMonth(-1)})
	s.seed(seedSpec{id: "inv-3", payor: "Acme", item: "Widget", amount: "10", issued: s.midMonth(-4)})

	resp, err := s.service.Dashboard(s.GetContext(), s.GetUserID())
	s.NoError(err)

	sales := resp.MonthlySales.Sales
	s.Len(sales, 3)
	s.True(sales[0].IsZero(), "got %s", sales[0])
	s.True(sales[1].Equal(decimal.NewFromInt(50)))
	s.True(sales[2].Equal(decimal.NewFromInt(100)))

	s.Equal(types.MonthLabel(s.GetNow()), resp.MonthlySales.Months[2])
	s.False(resp.SuggestCreateInvoice)
}

func (s *ReportingServiceSuite) TestMonthlySalesExcludesWindowBoundary() {
	start, _ := types.MonthWindow(s.GetNow(), 0)
	s.seed(seedSpec{id: "inv-1", payor: "Acme", item: "Widget", amount: "100", issued: start})

	resp, err := s.service.Dashboard(s.GetContext(), s.GetUserID())
	s.NoError(err)
	s.True(resp.MonthlySales.Sales[2].IsZero())
}

func (s *ReportingServiceSuite) TestSalesByCustomer() {
	issued := s.midMonth(0)
	s.seed(seedSpec{id: "inv-1", payor: "Acme", item: "Widget", amount: "100", issued: issued})
	s.seed(seedSpec{id: "inv-2", payor: "Globex", item: "Widget", amount: "300", issued: issued})
	s.seed(seedSpec{id: "inv-3", payor: "Acme", item: "Widget", amount: "50", issued: issued})

	resp, err := s.service.Dashboard(s.GetContext(), s.GetUserID())
	s.NoError(err)

	board := resp.SalesByCustomer
	s.Equal([]string{"Globex", "Acme"}, board.Names)
	s.True(board.Sales[0].Equal(decimal.NewFromInt(300)))
	s.True(board.Sales[1].Equal(decimal.NewFromInt(150)))
}

func (s *ReportingServiceSuite) TestSalesByCustomerOverflowsIntoOthers() {
	issued := s.midMonth(0)
	for i := 1; i <= 7; i++ {
		s.seed(seedSpec{
			id:     fmt.Sprintf("inv-%d", i),
			payor:  fmt.Sprintf("Customer %d", i),
			item:   "Widget",
			amount: fmt.Sprintf("%d0", 8-i),
			issued: issued,
		})
	}

	resp, err := s.service.Dashboard(s.GetContext(), s.GetUserID())
	s.NoError(err)

	board := resp.SalesByCustomer
	s.Len(board.Names, 6)
	s.Equal("Others", board.Names[5])
	// the two smallest groups, 20 and 10
	s.True(board.Sales[5].Equal(decimal.NewFromInt(30)), "got %s", board.Sales[5])
}

func (s *ReportingServiceSuite) TestSalesByProductGroupsCaseInsensitively() {
	issued := s.midMonth(0)
	s.seed(seedSpec{id: "inv-1", payor: "Acme", item: "Widget", amount: "100", issued: issued})
	s.seed(seedSpec{id: "inv-2", payor: "Acme", item: "widget", amount: "25", issued: issued})

	resp, err := s.service.Dashboard(s.GetContext(), s.GetUserID())
	s.NoError(err)

	board := resp.SalesByProduct
	s.Equal([]string{"Widget"}, board.Names)
	s.True(board.Sales[0].Equal(decimal.NewFromInt(125)))
}

func (s *ReportingServiceSuite) TestReceivableTotals() {
	issued := s.midMonth(0)
	paid := s.GetNow().Add(-24 * time.Hour)
	pastDue := s.GetNow().Add(-48 * time.Hour)
	futureDue := s.GetNow().Add(30 * 24 * time.Hour)

	s.seed(seedSpec{id: "inv-paid", payor: "Acme", item: "Widget", amount: "100", issued: issued, datePaid: &paid})
	s.seed(seedSpec{id: "inv-open", payor: "Acme", item: "Widget", amount: "50", issued: issued, dateDue: &futureDue})
	s.seed(seedSpec{id: "inv-late", payor: "Acme", item: "Widget", amount: "25", issued: issued, dateDue: &pastDue})

	resp, err := s.service.Dashboard(s.GetContext(), s.GetUserID())
	s.NoError(err)

	s.True(resp.Totals.Total.Equal(decimal.NewFromInt(175)))
	s.True(resp.Totals.Received.Equal(decimal.NewFromInt(100)))
	s.True(resp.Totals.Owed.Equal(decimal.NewFromInt(75)))
	s.True(resp.Totals.Overdue.Equal(decimal.NewFromInt(25)))
}

func (s *ReportingServiceSuite) TestPayingOverdueInvoiceMovesItToReceived() {
	issued := s.midMonth(0)
	pastDue := s.GetNow().Add(-48 * time.Hour)
	s.seed(seedSpec{id: "inv-late", payor: "Acme", item: "Widget", amount: "25", issued: issued, dateDue: &pastDue})

	now := s.GetNow()
	s.NoError(s.GetStores().InvoiceRepo.SetDatePaid(s.GetContext(), "inv-late", &now))

	resp, err := s.service.Dashboard(s.GetContext(), s.GetUserID())
	s.NoError(err)

	s.True(resp.Totals.Received.Equal(decimal.NewFromInt(25)))
	s.True(resp.Totals.Owed.IsZero())
	s.True(resp.Totals.Overdue.IsZero())
}

func (s *ReportingServiceSuite) TestCustomerCountIsDistinct() {
	issued := s.midMonth(0)
	s.seed(seedSpec{id: "inv-1", payor: "Acme", item: "Widget", amount: "10", issued: issued})
	s.seed(seedSpec{id: "inv-2", payor: "Acme", item: "Widget", amount: "10", issued: issued})
	s.seed(seedSpec{id: "inv-3", payor: "Globex", item: "Widget", amount: "10", issued: issued})

	resp, err := s.service.Dashboard(s.GetContext(), s.GetUserID())
	s.NoError(err)
	s.Equal(2, resp.CustomerCount)
}

func (s *ReportingServiceSuite) TestCustomerBalances() {
	issued := s.midMonth(0)
	paid := s.GetNow().Add(-24 * time.Hour)

	s.seed(seedSpec{id: "inv-1", payor: "Acme", item: "Widget", amount: "100", issued: issued, datePaid: &paid})
	s.seed(seedSpec{id: "inv-2", payor: "Acme", item: "Widget", amount: "40", issued: issued})
	s.seed(seedSpec{id: "inv-3", payor: "Globex", item: "Widget", amount: "75", issued: issued})

	rows, err := s.service.CustomerBalances(s.GetContext())
	s.NoError(err)
	s.Len(rows, 2)

	byName := lo.KeyBy(rows, func(r *dto.CustomerBalanceResponse) string { return r.Customer })
	acme := byName["Acme"]
	s.True(acme.AmountReceived.Equal(decimal.NewFromInt(100)))
	s.True(acme.AmountOwed.Equal(decimal.NewFromInt(40)))

	globex := byName["Globex"]
	s.True(globex.AmountReceived.IsZero())
	s.True(globex.AmountOwed.Equal(decimal.NewFromInt(75)))
}
