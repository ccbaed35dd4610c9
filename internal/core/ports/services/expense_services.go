package services

import (
	"context"
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
)

// ExpenseReaderSvc defines read operations for expenses
type ExpenseReaderSvc interface {
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context) ([]domain.Expense, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Expense, error)

	// ListByDateRange is inclusive of both calendar days in the service's location.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Expense, error)
	ListToday(ctx context.Context) ([]domain.Expense, error)
	ListThisMonth(ctx context.Context) ([]domain.Expense, error)
}

// ExpenseWriterSvc defines write operations for expenses
type ExpenseWriterSvc interface {
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string) error
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
