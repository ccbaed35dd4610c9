package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	"github.com/SscSPs/shop_ledger_app/internal/core/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := services.NewProductService(env.db, env.opts...)

	ribeye, err := svc.CreateProduct(ctx, dto.CreateProductRequest{Name: " Ribeye ", UnitType: domain.UnitKg, CurrentStock: dec("3")})
	require.NoError(t, err)
	assert.Equal(t, "Ribeye", ribeye.Name)
	_, err = svc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Rump", UnitType: domain.UnitCarton})
	require.NoError(t, err)

	t.Run("create with same name and unit adds stock", func(t *testing.T) {
		restocked, err := svc.CreateProduct(ctx, dto.CreateProductRequest{Name: " ribeye ", UnitType: domain.UnitKg, CurrentStock: dec("2")})
		require.NoError(t, err)
		assert.Equal(t, ribeye.ID, restocked.ID)
		assert.Equal(t, "Ribeye", restocked.Name)
		assert.True(t, dec("5").Equal(restocked.CurrentStock))

		all, err := svc.ListProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		// Reset so the following subtests start from the original stock.
		_, err = svc.UpdateProduct(ctx, ribeye.ID, dto.UpdateProductRequest{CurrentStock: ptr(dec("3"))})
		require.NoError(t, err)
	})

	t.Run("create with same name but different unit is a new product", func(t *testing.T) {
		env := newTestEnv()
		svc := services.NewProductService(env.db, env.opts...)
		kg, err := svc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Ribeye", UnitType: domain.UnitKg, CurrentStock: dec("3")})
		require.NoError(t, err)
		piece, err := svc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Ribeye", UnitType: domain.UnitPiece, CurrentStock: dec("2")})
		require.NoError(t, err)

		assert.NotEqual(t, kg.ID, piece.ID)
		all, err := svc.ListProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
		assert.True(t, dec("3").Equal(env.product(ctx, kg.ID).CurrentStock))
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		found, err := svc.SearchProducts(ctx, "RIB")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, ribeye.ID, found[0].ID)

		all, err := svc.SearchProducts(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("add stock", func(t *testing.T) {
		updated, err := svc.AddStock(ctx, ribeye.ID, dec("2.5"))
		require.NoError(t, err)
		assert.True(t, dec("5.5").Equal(updated.CurrentStock))

		_, err = svc.AddStock(ctx, ribeye.ID, decimal.Zero)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		_, err = svc.AddStock(ctx, "missing", dec("1"))
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("out of stock", func(t *testing.T) {
		updated, err := svc.MarkOutOfStock(ctx, ribeye.ID)
		require.NoError(t, err)
		assert.True(t, updated.CurrentStock.IsZero())
	})

	t.Run("update rejects negative stock", func(t *testing.T) {
		_, err := svc.UpdateProduct(ctx, ribeye.ID, dto.UpdateProductRequest{CurrentStock: ptr(dec("-1"))})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteProduct(ctx, ribeye.ID))
		assert.ErrorIs(t, svc.DeleteProduct(ctx, ribeye.ID), apperrors.ErrNotFound)
		_, err := svc.GetProductByID(ctx, ribeye.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		remaining, err := svc.ListProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, remaining, 1)
	})
}

func TestCustomerService(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := services.NewCustomerService(env.db, env.opts...)

	nina, err := svc.CreateCustomer(ctx, dto.CreateCustomerRequest{Name: "Nina Patel", Phone: "0711 222 333"})
	require.NoError(t, err)
	_, err = svc.CreateCustomer(ctx, dto.CreateCustomerRequest{Name: "Oscar", Phone: "0799 000 111"})
	require.NoError(t, err)

	byName, err := svc.SearchCustomers(ctx, "patel")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, nina.ID, byName[0].ID)

	byPhone, err := svc.SearchCustomers(ctx, "0799")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "Oscar", byPhone[0].Name)

	updated, err := svc.UpdateCustomer(ctx, nina.ID, dto.UpdateCustomerRequest{Address: ptr("12 High St")})
	require.NoError(t, err)
	assert.Equal(t, "12 High St", updated.Address)
	assert.Equal(t, "Nina Patel", updated.Name)

	_, err = svc.UpdateCustomer(ctx, nina.ID, dto.UpdateCustomerRequest{Name: ptr("")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreateCustomer(ctx, dto.CreateCustomerRequest{Name: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	require.NoError(t, svc.DeleteCustomer(ctx, nina.ID))
	assert.ErrorIs(t, svc.DeleteCustomer(ctx, nina.ID), apperrors.ErrNotFound)
}

func TestExpenseDateQueries(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)
	svc := services.NewExpenseService(env.db, services.WithClock(func() time.Time { return now }), services.WithLocation(time.UTC))

	create := func(category string, date time.Time, amount string) {
		_, err := svc.CreateExpense(ctx, dto.CreateExpenseRequest{
			Category: category, Description: category + " bill", Amount: dec(amount), Date: date,
		})
		require.NoError(t, err)
	}
	create("Rent", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "900")
	create("Fuel", time.Date(2024, 3, 15, 7, 0, 0, 0, time.UTC), "40")
	create("Fuel", time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC), "35")
	create("Fuel", time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), "20")

	today, err := svc.ListToday(ctx)
	require.NoError(t, err)
	assert.Len(t, today, 2)

	month, err := svc.ListThisMonth(ctx)
	require.NoError(t, err)
	assert.Len(t, month, 3)

	ranged, err := svc.ListByDateRange(ctx, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, ranged, 2, "both end days are inclusive")

	fuel, err := svc.ListByCategory(ctx, "fuel")
	require.NoError(t, err)
	assert.Len(t, fuel, 3)

	_, err = svc.CreateExpense(ctx, dto.CreateExpenseRequest{Category: "Misc", Description: "x", Amount: dec("1")})
	assert.ErrorIs(t, err, apperrors.ErrValidation, "date is required")
}
