package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/adapters/database/kvrepo"
	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	"github.com/SscSPs/shop_ledger_app/internal/core/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReportingService(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	products := services.NewProductService(env.db, env.opts...)
	customers := services.NewCustomerService(env.db, env.opts...)
	invoices := services.NewInvoiceService(env.db, env.opts...)
	payments := services.NewPaymentService(env.db, env.opts...)
	expenses := services.NewExpenseService(env.db, env.opts...)
	reports := services.NewReportingService(env.db,
		services.WithReportingBase(services.WithClock(func() time.Time { return testEpoch.Add(time.Hour) }), services.WithLocation(time.UTC)),
		services.WithLowStockThreshold(5),
	)

	beef, err := products.CreateProduct(ctx, dto.CreateProductRequest{Name: "Beef", UnitType: domain.UnitKg, CurrentStock: dec("20")})
	require.NoError(t, err)
	pork, err := products.CreateProduct(ctx, dto.CreateProductRequest{Name: "Pork", UnitType: domain.UnitKg, CurrentStock: dec("4")})
	require.NoError(t, err)
	_, err = products.CreateProduct(ctx, dto.CreateProductRequest{Name: "Veal", UnitType: domain.UnitKg})
	require.NoError(t, err)

	rich, err := customers.CreateCustomer(ctx, dto.CreateCustomerRequest{Name: "Rich", OpeningBalance: ptr(dec("300"))})
	require.NoError(t, err)
	_, err = customers.CreateCustomer(ctx, dto.CreateCustomerRequest{Name: "Modest", OpeningBalance: ptr(dec("100"))})
	require.NoError(t, err)
	_, err = customers.CreateCustomer(ctx, dto.CreateCustomerRequest{Name: "InCredit", OpeningBalance: ptr(dec("-50"))})
	require.NoError(t, err)

	first, err := invoices.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		CustomerID: &rich.ID, CompanyName: "Acme",
		Items: []dto.InvoiceItemRequest{item(beef.ID, "10", "10"), item(pork.ID, "1", "20")},
	})
	require.NoError(t, err)
	_, err = invoices.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		CompanyName: "Zeta", Items: []dto.InvoiceItemRequest{item(pork.ID, "2", "40")},
	})
	require.NoError(t, err)
	_, err = invoices.CreateInvoice(ctx, dto.CreateInvoiceRequest{
		CompanyName: "acme", Items: []dto.InvoiceItemRequest{item(beef.ID, "1", "30")},
	})
	require.NoError(t, err)

	_, err = payments.RecordPayment(ctx, dto.RecordPaymentRequest{InvoiceID: first.Invoice.ID, Amount: dec("120"), PaymentMethod: domain.PaymentCash})
	require.NoError(t, err)

	_, err = expenses.CreateExpense(ctx, dto.CreateExpenseRequest{Category: "Rent", Description: "March", Amount: dec("100"), Date: testEpoch})
	require.NoError(t, err)
	_, err = expenses.CreateExpense(ctx, dto.CreateExpenseRequest{Category: "Fuel", Description: "Van", Amount: dec("30"), Date: testEpoch})
	require.NoError(t, err)
	_, err = expenses.CreateExpense(ctx, dto.CreateExpenseRequest{Category: "Fuel", Description: "Old", Amount: dec("10"), Date: testEpoch.AddDate(0, -2, 0)})
	require.NoError(t, err)

	t.Run("statistics", func(t *testing.T) {
		stats, err := reports.GetStatistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalProducts)
		assert.Equal(t, 3, stats.TotalCustomers)
		assert.Equal(t, 3, stats.TotalInvoices)
		assert.True(t, dec("230").Equal(stats.TotalRevenue))
		assert.Nil(t, stats.LastBackup)
	})

	t.Run("sales summary", func(t *testing.T) {
		sales, err := reports.GetSalesSummary(ctx, domain.RangeToday)
		require.NoError(t, err)
		assert.Equal(t, 3, sales.InvoiceCount)
		assert.True(t, dec("76.67").Equal(sales.AverageOrder))
		require.NotNil(t, sales.TopProduct)
		assert.Equal(t, beef.ID, sales.TopProduct.ProductID)
		assert.True(t, dec("11").Equal(sales.TopProduct.Quantity))
	})

	t.Run("top companies merge case", func(t *testing.T) {
		companies, err := reports.GetTopCompanies(ctx, domain.RangeAll, 10)
		require.NoError(t, err)
		require.Len(t, companies, 2)
		assert.Equal(t, "Acme", companies[0].CompanyName)
		assert.Equal(t, 2, companies[0].InvoiceCount)
		assert.True(t, dec("150").Equal(companies[0].Total))

		limited, err := reports.GetTopCompanies(ctx, domain.RangeAll, 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})

	t.Run("outstanding", func(t *testing.T) {
		outstanding, err := reports.GetOutstanding(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, outstanding.Count)
		assert.True(t, dec("110").Equal(outstanding.Total))
	})

	t.Run("receivables", func(t *testing.T) {
		receivables, err := reports.GetReceivables(ctx, 10)
		require.NoError(t, err)
		assert.True(t, dec("280").Equal(receivables.Total))
		require.Len(t, receivables.TopDebtors, 2)
		assert.Equal(t, "Rich", receivables.TopDebtors[0].Name)
	})

	t.Run("profit", func(t *testing.T) {
		profit, err := reports.GetProfit(ctx, domain.RangeMonth)
		require.NoError(t, err)
		assert.True(t, dec("230").Equal(profit.Revenue))
		assert.True(t, dec("130").Equal(profit.Expenses))
		assert.True(t, dec("100").Equal(profit.Profit))
		assert.True(t, dec("43.48").Equal(profit.Margin))
	})

	t.Run("stock buckets", func(t *testing.T) {
		stock, err := reports.GetStockSummary(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.StockSummary{InStock: 1, LowStock: 1, OutOfStock: 1}, *stock)
	})

	t.Run("expense summary", func(t *testing.T) {
		summary, err := reports.GetExpenseSummary(ctx, domain.RangeAll)
		require.NoError(t, err)
		assert.Equal(t, 3, summary.Count)
		assert.True(t, dec("140").Equal(summary.Total))
		require.Len(t, summary.Categories, 2)
		assert.Equal(t, "Rent", summary.Categories[0].Category)
		assert.Equal(t, 2, summary.Categories[1].Count)
	})
}

// MockSnapshotSink is a mock implementation of services.SnapshotSink.
type MockSnapshotSink struct {
	mock.Mock
}

func (m *MockSnapshotSink) Put(ctx context.Context, name string, body []byte) (string, error) {
	args := m.Called(ctx, name, body)
	return args.String(0), args.Error(1)
}

func TestBackupService(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		env := newTestEnv()
		svc := services.NewBackupService(env.db, env.db, nil, env.opts...)
		_, err := svc.Backup(ctx)
		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, http.StatusServiceUnavailable, appErr.Code)
	})

	t.Run("uploads snapshot and records time", func(t *testing.T) {
		env := newTestEnv()
		_, err := services.NewProductService(env.db, env.opts...).CreateProduct(ctx, dto.CreateProductRequest{Name: "Beef", UnitType: domain.UnitKg})
		require.NoError(t, err)

		sink := new(MockSnapshotSink)
		sink.On("Put", mock.Anything, mock.MatchedBy(func(name string) bool {
			return len(name) > 0 && name[len(name)-5:] == ".json"
		}), mock.MatchedBy(func(body []byte) bool {
			var doc struct {
				Collections map[string]json.RawMessage `json:"collections"`
			}
			if json.Unmarshal(body, &doc) != nil {
				return false
			}
			_, ok := doc.Collections[kvrepo.KeyProducts]
			return ok
		})).Return("s3://backups/shopledger.json", nil).Once()

		svc := services.NewBackupService(env.db, env.db, sink, env.opts...)
		resp, err := svc.Backup(ctx)
		require.NoError(t, err)
		assert.Equal(t, "s3://backups/shopledger.json", resp.Location)
		assert.Positive(t, resp.Bytes)
		sink.AssertExpectations(t)

		stats, err := services.NewReportingService(env.db).GetStatistics(ctx)
		require.NoError(t, err)
		assert.NotNil(t, stats.LastBackup)
	})

	t.Run("upload failure leaves last backup unset", func(t *testing.T) {
		env := newTestEnv()
		sink := new(MockSnapshotSink)
		sink.On("Put", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("bucket missing")).Once()

		_, err := services.NewBackupService(env.db, env.db, sink, env.opts...).Backup(ctx)
		assert.Error(t, err)

		stats, err := services.NewReportingService(env.db).GetStatistics(ctx)
		require.NoError(t, err)
		assert.Nil(t, stats.LastBackup)
	})
}
