package dto

import "github.com/shopspring/decimal"

// MonthlySalesResponse holds parallel series of summed sales and month
// labels, oldest to newest.
type MonthlySalesResponse struct {
	Sales  []decimal.Decimal `json:"sales"`
	Months []string          `json:"months"`
}

// LeaderboardResponse holds parallel series of summed sales and display
// names. When sales overflowed the ranked slots, the final entry is the
// aggregated "Others" bucket.
type LeaderboardResponse struct {
	Sales []decimal.Decimal `json:"sales"`
	Names []string          `json:"names"`
}

// TotalsResponse summarizes receivables across every invoice
type TotalsResponse struct {
	Total    decimal.Decimal `json:"total"`
	Received decimal.Decimal `json:"received"`
	Owed     decimal.Decimal `json:"owed"`
	Overdue  decimal.Decimal `json:"overdue"`
}

// DashboardResponse is the full reporting view, computed from a single
// snapshot of the invoice and line item collections.
type DashboardResponse struct {
	SuggestCreateInvoice bool                 `json:"suggest_create_invoice"`
	Currency             string               `json:"currency"`
	MonthlySales         MonthlySalesResponse `json:"monthly_sales"`
	SalesByCustomer      LeaderboardResponse  `json:"sales_by_customer"`
	SalesByProduct       LeaderboardResponse  `json:"sales_by_product"`
	Totals               TotalsResponse       `json:"totals"`
	CustomerCount        int                  `json:"customer_count"`
}

// CustomerBalanceResponse is one row of the customers dashboard
type CustomerBalanceResponse struct {
	Customer       string          `json:"customer"`
	Email          string          `json:"email,omitempty"`
	Currency       string          `json:"currency"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	AmountOwed     decimal.Decimal `json:"amount_owed"`
}
