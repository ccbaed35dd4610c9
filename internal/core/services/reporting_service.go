package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/utils"
	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold is the stock level below which a product counts as low.
const DefaultLowStockThreshold = 10

// ReportingOption configures the reporting service.
type ReportingOption func(*reportingService)

// WithLowStockThreshold overrides DefaultLowStockThreshold.
func WithLowStockThreshold(threshold int) ReportingOption {
	return func(s *reportingService) {
		if threshold > 0 {
			s.lowStockThreshold = decimal.NewFromInt(int64(threshold))
		}
	}
}

// WithReportingBase applies the shared service options.
func WithReportingBase(options ...ServiceOption) ReportingOption {
	return func(s *reportingService) {
		for _, option := range options {
			option(&s.BaseService)
		}
	}
}

type reportingService struct {
	BaseService
	txManager         portsrepo.TransactionManager
	lowStockThreshold decimal.Decimal
}

// NewReportingService creates a new reporting service.
func NewReportingService(txManager portsrepo.TransactionManager, options ...ReportingOption) portssvc.ReportingService {
	s := &reportingService{
		BaseService:       newBaseService(),
		txManager:         txManager,
		lowStockThreshold: decimal.NewFromInt(DefaultLowStockThreshold),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	stats := &domain.Statistics{}
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		products, err := repos.Products().GetAll(ctx)
		if err != nil {
			return err
		}
		customers, err := repos.Customers().GetAll(ctx)
		if err != nil {
			return err
		}
		invoices, err := repos.Invoices().GetAll(ctx)
		if err != nil {
			return err
		}
		lastBackup, err := repos.System().LastBackup(ctx)
		if err != nil {
			return err
		}

		stats.TotalProducts = len(products)
		stats.TotalCustomers = len(customers)
		stats.TotalInvoices = len(invoices)
		stats.TotalRevenue = sumInvoices(invoices)
		stats.LastBackup = lastBackup
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return stats, nil
}

func (s *reportingService) GetSalesSummary(ctx context.Context, r domain.ReportRange) (*domain.SalesSummary, error) {
	invoices, err := s.invoicesIn(ctx, r)
	if err != nil {
		return nil, err
	}

	summary := &domain.SalesSummary{
		Range:        r,
		InvoiceCount: len(invoices),
		Revenue:      sumInvoices(invoices),
		AverageOrder: decimal.Zero,
	}
	if len(invoices) > 0 {
		summary.AverageOrder = utils.RoundMoney(summary.Revenue.Div(decimal.NewFromInt(int64(len(invoices)))))
	}
	summary.TopProduct = topProduct(invoices)
	return summary, nil
}

func (s *reportingService) GetTopCompanies(ctx context.Context, r domain.ReportRange, limit int) ([]domain.CompanyTotal, error) {
	invoices, err := s.invoicesIn(ctx, r)
	if err != nil {
		return nil, err
	}

	byKey := map[string]*domain.CompanyTotal{}
	var order []string
	for _, inv := range invoices {
		key := strings.ToLower(strings.TrimSpace(inv.CompanyName))
		total, ok := byKey[key]
		if !ok {
			total = &domain.CompanyTotal{CompanyName: strings.TrimSpace(inv.CompanyName), Total: decimal.Zero}
			byKey[key] = total
			order = append(order, key)
		}
		total.InvoiceCount++
		total.Total = total.Total.Add(inv.Total)
	}

	companies := make([]domain.CompanyTotal, 0, len(order))
	for _, key := range order {
		companies = append(companies, *byKey[key])
	}
	sort.SliceStable(companies, func(i, j int) bool {
		return companies[i].Total.GreaterThan(companies[j].Total)
	})
	return truncate(companies, limit), nil
}

// GetOutstanding covers invoices in status sent.
func (s *reportingService) GetOutstanding(ctx context.Context) (*domain.OutstandingSummary, error) {
	invoices, err := s.invoicesIn(ctx, domain.RangeAll)
	if err != nil {
		return nil, err
	}
	summary := &domain.OutstandingSummary{Total: decimal.Zero}
	for _, inv := range invoices {
		if inv.Status == domain.InvoiceSent {
			summary.Count++
			summary.Total = summary.Total.Add(inv.Total)
		}
	}
	return summary, nil
}

// GetReceivables sums positive customer balances and lists the largest.
func (s *reportingService) GetReceivables(ctx context.Context, limit int) (*domain.ReceivablesSummary, error) {
	var customers []domain.Customer
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		customers, err = repos.Customers().GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute receivables: %w", err)
	}

	summary := &domain.ReceivablesSummary{Total: decimal.Zero, TopDebtors: []domain.Debtor{}}
	for _, c := range customers {
		if !c.Balance.IsPositive() {
			continue
		}
		summary.Total = summary.Total.Add(c.Balance)
		summary.TopDebtors = append(summary.TopDebtors, domain.Debtor{CustomerID: c.ID, Name: c.Name, Balance: c.Balance})
	}
	sort.SliceStable(summary.TopDebtors, func(i, j int) bool {
		return summary.TopDebtors[i].Balance.GreaterThan(summary.TopDebtors[j].Balance)
	})
	summary.TopDebtors = truncate(summary.TopDebtors, limit)
	return summary, nil
}

func (s *reportingService) GetProfit(ctx context.Context, r domain.ReportRange) (*domain.ProfitSummary, error) {
	invoices, err := s.invoicesIn(ctx, r)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expensesIn(ctx, r)
	if err != nil {
		return nil, err
	}

	revenue := sumInvoices(invoices)
	spent := decimal.Zero
	for _, e := range expenses {
		spent = spent.Add(e.Amount)
	}
	profit := revenue.Sub(spent)
	return &domain.ProfitSummary{
		Revenue:  revenue,
		Expenses: spent,
		Profit:   profit,
		Margin:   utils.Percent(profit, revenue),
	}, nil
}

// GetStockSummary buckets products: zero or less is out of stock, below the
// threshold is low, anything else is in stock.
func (s *reportingService) GetStockSummary(ctx context.Context) (*domain.StockSummary, error) {
	var products []domain.Product
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		products, err = repos.Products().GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute stock summary: %w", err)
	}

	summary := &domain.StockSummary{}
	for _, p := range products {
		switch {
		case !p.CurrentStock.IsPositive():
			summary.OutOfStock++
		case p.CurrentStock.LessThan(s.lowStockThreshold):
			summary.LowStock++
		default:
			summary.InStock++
		}
	}
	return summary, nil
}

func (s *reportingService) GetExpenseSummary(ctx context.Context, r domain.ReportRange) (*domain.ExpenseSummary, error) {
	expenses, err := s.expensesIn(ctx, r)
	if err != nil {
		return nil, err
	}

	summary := &domain.ExpenseSummary{Total: decimal.Zero, Average: decimal.Zero, Categories: []domain.CategoryTotal{}}
	index := map[string]int{}
	for _, e := range expenses {
		summary.Count++
		summary.Total = summary.Total.Add(e.Amount)

		i, ok := index[e.Category]
		if !ok {
			i = len(summary.Categories)
			index[e.Category] = i
			summary.Categories = append(summary.Categories, domain.CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}
		summary.Categories[i].Total = summary.Categories[i].Total.Add(e.Amount)
		summary.Categories[i].Count++
	}
	if summary.Count > 0 {
		summary.Average = utils.RoundMoney(summary.Total.Div(decimal.NewFromInt(int64(summary.Count))))
	}
	sort.SliceStable(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Total.GreaterThan(summary.Categories[j].Total)
	})
	return summary, nil
}

func (s *reportingService) invoicesIn(ctx context.Context, r domain.ReportRange) ([]domain.Invoice, error) {
	start := r.Start(s.Now(), s.Location())
	var invoices []domain.Invoice
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		all, err := repos.Invoices().GetAll(ctx)
		if err != nil {
			return err
		}
		for _, inv := range all {
			if inRange(inv.CreatedAt, start) {
				invoices = append(invoices, inv)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices for %s: %w", r, err)
	}
	return invoices, nil
}

func (s *reportingService) expensesIn(ctx context.Context, r domain.ReportRange) ([]domain.Expense, error) {
	start := r.Start(s.Now(), s.Location())
	var expenses []domain.Expense
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		all, err := repos.Expenses().GetAll(ctx)
		if err != nil {
			return err
		}
		for _, e := range all {
			if inRange(e.Date, start) {
				expenses = append(expenses, e)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses for %s: %w", r, err)
	}
	return expenses, nil
}

func inRange(at, start time.Time) bool {
	return start.IsZero() || !at.Before(start)
}

func sumInvoices(invoices []domain.Invoice) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		total = total.Add(inv.Total)
	}
	return total
}

// topProduct returns the product sold in the largest quantity, first seen wins ties.
func topProduct(invoices []domain.Invoice) *domain.ProductQuantity {
	quantities := map[string]*domain.ProductQuantity{}
	var best *domain.ProductQuantity
	for _, inv := range invoices {
		for _, item := range inv.Items {
			pq, ok := quantities[item.ProductID]
			if !ok {
				pq = &domain.ProductQuantity{ProductID: item.ProductID, ProductName: item.ProductName, Quantity: decimal.Zero}
				quantities[item.ProductID] = pq
			}
			pq.Quantity = pq.Quantity.Add(item.Quantity)
			if best == nil || pq.Quantity.GreaterThan(best.Quantity) {
				best = pq
			}
		}
	}
	if best == nil {
		return nil
	}
	result := *best
	return &result
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
