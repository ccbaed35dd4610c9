package services

import (
	"context"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
)

// ReportingService defines read-only aggregations over the stored data.
type ReportingService interface {
	GetStatistics(ctx context.Context) (*domain.Statistics, error)
	GetSalesSummary(ctx context.Context, r domain.ReportRange) (*domain.SalesSummary, error)

	// GetTopCompanies ranks companies by invoiced total in the range.
	GetTopCompanies(ctx context.Context, r domain.ReportRange, limit int) ([]domain.CompanyTotal, error)
	GetOutstanding(ctx context.Context) (*domain.OutstandingSummary, error)
	GetReceivables(ctx context.Context, limit int) (*domain.ReceivablesSummary, error)
	GetProfit(ctx context.Context, r domain.ReportRange) (*domain.ProfitSummary, error)
	GetStockSummary(ctx context.Context) (*domain.StockSummary, error)
	GetExpenseSummary(ctx context.Context, r domain.ReportRange) (*domain.ExpenseSummary, error)
}
