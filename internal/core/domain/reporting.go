package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportRange selects the window a sales report covers.
type ReportRange string

const (
	RangeToday ReportRange = "today"
	RangeWeek  ReportRange = "week"  // last 7 days
	RangeMonth ReportRange = "month" // last 30 days
	RangeAll   ReportRange = "all"
)

// Valid reports whether r is a known range.
func (r ReportRange) Valid() bool {
	switch r {
	case RangeToday, RangeWeek, RangeMonth, RangeAll:
		return true
	}
	return false
}

// Start returns the inclusive lower bound of the range relative to now in loc.
// The zero time is returned for RangeAll.
func (r ReportRange) Start(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	switch r {
	case RangeToday:
		return midnight
	case RangeWeek:
		return now.AddDate(0, 0, -7)
	case RangeMonth:
		return now.AddDate(0, 0, -30)
	}
	return time.Time{}
}

// Statistics are the headline counts across the whole store.
type Statistics struct {
	TotalProducts  int             `json:"totalProducts"`
	TotalCustomers int             `json:"totalCustomers"`
	TotalInvoices  int             `json:"totalInvoices"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	LastBackup     *time.Time      `json:"lastBackup,omitempty"`
}

// ProductQuantity is how much of a product was sold.
type ProductQuantity struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// SalesSummary aggregates invoices in a range.
type SalesSummary struct {
	Range        ReportRange      `json:"range"`
	InvoiceCount int              `json:"invoiceCount"`
	Revenue      decimal.Decimal  `json:"revenue"`
	AverageOrder decimal.Decimal  `json:"averageOrder"`
	TopProduct   *ProductQuantity `json:"topProduct,omitempty"`
}

// CompanyTotal is the invoiced total for one company.
type CompanyTotal struct {
	CompanyName  string          `json:"companyName"`
	InvoiceCount int             `json:"invoiceCount"`
	Total        decimal.Decimal `json:"total"`
}

// OutstandingSummary covers invoices still awaiting payment.
type OutstandingSummary struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// Debtor is a customer with a positive balance.
type Debtor struct {
	CustomerID string          `json:"customerId"`
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
}

// ReceivablesSummary is the money owed by customers.
type ReceivablesSummary struct {
	Total      decimal.Decimal `json:"total"`
	TopDebtors []Debtor        `json:"topDebtors"`
}

// ProfitSummary compares revenue against expenses.
type ProfitSummary struct {
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
	Margin   decimal.Decimal `json:"margin"` // percent of revenue, zero when revenue is zero
}

// StockSummary buckets products by stock level.
type StockSummary struct {
	InStock    int `json:"inStock"`
	LowStock   int `json:"lowStock"`
	OutOfStock int `json:"outOfStock"`
}

// ExpenseSummary aggregates expenses.
type ExpenseSummary struct {
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
	Average    decimal.Decimal `json:"average"`
	Categories []CategoryTotal `json:"categories"`
}
