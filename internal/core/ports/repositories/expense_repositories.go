package repositories

import (
	"context"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
)

// ExpenseReader defines read operations for expenses
type ExpenseReader interface {
	GetAll(ctx context.Context) ([]domain.Expense, error)
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
}

// ExpenseWriter defines write operations for expenses
type ExpenseWriter interface {
	Create(ctx context.Context, expense domain.Expense) (*domain.Expense, error)
	Update(ctx context.Context, id string, update domain.ExpenseUpdate) (*domain.Expense, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
