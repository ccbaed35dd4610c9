package repositories

import (
	"context"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	GetAll(ctx context.Context) ([]domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// Create stores the customer with a zero balance. Opening balances go through the ledger.
	Create(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, id string, update domain.CustomerUpdate) (*domain.Customer, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CustomerBalanceWriter is used only by the ledger engine.
type CustomerBalanceWriter interface {
	SetBalance(ctx context.Context, id string, balance decimal.Decimal) (*domain.Customer, error)
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
	CustomerBalanceWriter
}
