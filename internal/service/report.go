package service

import (
	"context"
	"strings"
	"time"

	"github.com/billfold/billfold/internal/api/dto"
	"github.com/billfold/billfold/internal/domain/invoice"
	ierr "github.com/billfold/billfold/internal/errors"
	"github.com/billfold/billfold/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// monthlySalesWindow is how many trailing calendar months the dashboard
// charts, the current month included.
const monthlySalesWindow = 3

// ReportingService derives the dashboard aggregates from the invoice
// collections. Every report in a response is computed from one snapshot
// of the store, so the numbers are mutually consistent even while
// invoices are being written concurrently.
type ReportingService interface {
	Dashboard(ctx context.Context, userID string) (*dto.DashboardResponse, error)
	CustomerBalances(ctx context.Context) ([]*dto.CustomerBalanceResponse, error)
}

type reportingService struct {
	ServiceParams
}

func NewReportingService(params ServiceParams) ReportingService {
	return &reportingService{
		ServiceParams: params,
	}
}

// reportSnapshot is one consistent read of the invoice data. Invoice
// totals are re-derived from line items so reports never trust a stale
// persisted snapshot.
type reportSnapshot struct {
	invoices []*invoice.Invoice
	now      time.Time
}

func (s *reportingService) loadSnapshot(ctx context.Context) (*reportSnapshot, error) {
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
		inv.Subtotal = totals.Subtotal
		inv.Total = totals.Total
	}

	return &reportSnapshot{
		invoices: invoices,
		now:      time.Now().UTC(),
	}, nil
}

func (s *reportingService) Dashboard(ctx context.Context, userID string) (*dto.DashboardResponse, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	currency, err := s.displayCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Currency:        currency,
		MonthlySales:    monthlySales(snap),
		SalesByCustomer: salesByCustomer(snap),
		SalesByProduct:  salesByProduct(snap),
		Totals:          receivableTotals(snap),
		CustomerCount:   customerCount(snap),
	}
	if len(snap.invoices) == 0 {
		resp.SuggestCreateInvoice = true
	}
	return resp, nil
}

// displayCurrency resolves the currency the dashboard renders amounts
// in: the user's saved default, falling back to the configured one for
// users who have not issued an invoice yet.
func (s *reportingService) displayCurrency(ctx context.Context, userID string) (string, error) {
	defaults, err := s.SettingsRepo.Get(ctx, userID)
	switch {
	case err == nil && defaults.Currency != "":
		return defaults.Currency, nil
	case err != nil && !ierr.IsNotFound(err):
		return "", err
	}
	return s.Config.Billing.DefaultCurrency, nil
}

// monthlySales sums invoice totals over the trailing months, oldest
// first. An invoice belongs to a month when its issue date falls
// strictly between the month's first and last day.
func monthlySales(snap *reportSnapshot) dto.MonthlySalesResponse {
	sales := make([]decimal.Decimal, 0, monthlySalesWindow)
	months := make([]string, 0, monthlySalesWindow)

	for offset := -(monthlySalesWindow - 1); offset <= 0; offset++ {
		start, end := types.MonthWindow(snap.now, offset)

		sum := decimal.Zero
		for _, inv := range snap.invoices {
			if inv.DateIssued.After(start) && inv.DateIssued.Before(end) {
				sum = sum.Add(inv.Total)
			}
		}

		sales = append(sales, sum)
		months = append(months, types.MonthLabel(start))
	}

	return dto.MonthlySalesResponse{Sales: sales, Months: months}
}

// salesByCustomer ranks payors by their cumulative invoice totals.
// Grouping keys on the payor's identity, not the display name, so a
// renamed customer keeps one bucket (labelled with the first name seen).
func salesByCustomer(snap *reportSnapshot) dto.LeaderboardResponse {
	entries := make([]salesEntry, 0)
	index := make(map[string]int)

	for _, inv := range snap.invoices {
		i, ok := index[inv.Payor.ID]
		if !ok {
			i = len(entries)
			index[inv.Payor.ID] = i
			entries = append(entries, salesEntry{
				Key:   inv.Payor.ID,
				Label: inv.Payor.Name,
			})
		}
		entries[i].Sales = entries[i].Sales.Add(inv.Total)
	}

	sales, names := leaderboard(rankTopSales(entries))
	return dto.LeaderboardResponse{Sales: sales, Names: names}
}

// salesByProduct ranks line items by quantity times unit price, grouped
// by case-insensitive item name across all invoices.
func salesByProduct(snap *reportSnapshot) dto.LeaderboardResponse {
	entries := make([]salesEntry, 0)
	index := make(map[string]int)

	for _, inv := range snap.invoices {
		for _, item := range inv.Items {
			key := strings.ToLower(item.Name)
			i, ok := index[key]
			if !ok {
				i = len(entries)
				index[key] = i
				entries = append(entries, salesEntry{
					Key:   key,
					Label: item.Name,
				})
			}
			entries[i].Sales = entries[i].Sales.Add(invoice.ItemAmount(item))
		}
	}

	sales, names := leaderboard(rankTopSales(entries))
	return dto.LeaderboardResponse{Sales: sales, Names: names}
}

// receivableTotals splits the grand total into received, outstanding
// and the overdue slice of the outstanding amount. An invoice counts as
// received the moment a payment date is recorded; clearing the payment
// date moves it back to owed.
func receivableTotals(snap *reportSnapshot) dto.TotalsResponse {
	totals := dto.TotalsResponse{
		Total:    decimal.Zero,
		Received: decimal.Zero,
		Owed:     decimal.Zero,
		Overdue:  decimal.Zero,
	}

	for _, inv := range snap.invoices {
		totals.Total = totals.Total.Add(inv.Total)
		if inv.IsPaid() {
			totals.Received = totals.Received.Add(inv.Total)
			continue
		}
		totals.Owed = totals.Owed.Add(inv.Total)
		if inv.IsOverdue(snap.now) {
			totals.Overdue = totals.Overdue.Add(inv.Total)
		}
	}

	return totals
}

// customerCount counts distinct payor identities across all invoices.
func customerCount(snap *reportSnapshot) int {
	return len(lo.UniqBy(snap.invoices, func(inv *invoice.Invoice) string {
		return inv.Payor.ID
	}))
}

// CustomerBalances reports, per customer, how much they have paid and
// how much they still owe. Rows keep first invoice order; the currency
// shown is the one their first invoice was issued in.
func (s *reportingService) CustomerBalances(ctx context.Context) ([]*dto.CustomerBalanceResponse, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]*dto.CustomerBalanceResponse, 0)
	index := make(map[string]int)

	for _, inv := range snap.invoices {
		i, ok := index[inv.Payor.ID]
		if !ok {
			i = len(rows)
			index[inv.Payor.ID] = i
			rows = append(rows, &dto.CustomerBalanceResponse{
				Customer:       inv.Payor.Name,
				Email:          inv.Payor.Email,
				Currency:       inv.Currency,
				AmountReceived: decimal.Zero,
				AmountOwed:     decimal.Zero,
			})
		}
		if inv.IsPaid() {
			rows[i].AmountReceived = rows[i].AmountReceived.Add(inv.Total)
		} else {
			rows[i].AmountOwed = rows[i].AmountOwed.Add(inv.Total)
		}
	}

	return rows, nil
}
