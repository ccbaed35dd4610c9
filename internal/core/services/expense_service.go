package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
)

type expenseService struct {
	BaseService
	txManager portsrepo.TransactionManager
}

// NewExpenseService creates a new expense service.
func NewExpenseService(txManager portsrepo.TransactionManager, options ...ServiceOption) portssvc.ExpenseSvcFacade {
	return &expenseService{BaseService: newBaseService(options...), txManager: txManager}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	expense := domain.Expense{
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Date:        req.Date,
		Receipt:     req.Receipt,
		Notes:       req.Notes,
	}
	if err := expense.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Expense
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		created, err = repos.Expenses().Create(ctx, expense)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create expense", slog.String("category", expense.Category))
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return created, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	update := req.ToDomain()
	var updated *domain.Expense
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		existing, err := repos.Expenses().GetByID(ctx, expenseID)
		if err != nil {
			return err
		}
		candidate := *existing
		update.Apply(&candidate)
		if err := candidate.Validate(); err != nil {
			return err
		}
		updated, err = repos.Expenses().Update(ctx, expenseID, update)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update expense %s: %w", expenseID, err)
	}
	return updated, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, expenseID string) error {
	var deleted bool
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		deleted, err = repos.Expenses().Delete(ctx, expenseID)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	if !deleted {
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
	}
	return nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	var expense *domain.Expense
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		expense, err = repos.Expenses().GetByID(ctx, expenseID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get expense %s: %w", expenseID, err)
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	return s.filter(ctx, func(domain.Expense) bool { return true })
}

func (s *expenseService) ListByCategory(ctx context.Context, category string) ([]domain.Expense, error) {
	return s.filter(ctx, func(e domain.Expense) bool { return strings.EqualFold(e.Category, category) })
}

func (s *expenseService) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Expense, error) {
	from := startOfDay(start, s.Location())
	until := startOfDay(end, s.Location()).AddDate(0, 0, 1)
	if until.Before(from) {
		return []domain.Expense{}, nil
	}
	return s.filter(ctx, func(e domain.Expense) bool {
		return !e.Date.Before(from) && e.Date.Before(until)
	})
}

func (s *expenseService) ListToday(ctx context.Context) ([]domain.Expense, error) {
	now := s.Now()
	return s.ListByDateRange(ctx, now, now)
}

func (s *expenseService) ListThisMonth(ctx context.Context) ([]domain.Expense, error) {
	now := s.Now().In(s.Location())
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.Location())
	last := first.AddDate(0, 1, -1)
	return s.ListByDateRange(ctx, first, last)
}

func (s *expenseService) filter(ctx context.Context, keep func(domain.Expense) bool) ([]domain.Expense, error) {
	var expenses []domain.Expense
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		all, err := repos.Expenses().GetAll(ctx)
		if err != nil {
			return err
		}
		expenses = make([]domain.Expense, 0, len(all))
		for _, e := range all {
			if keep(e) {
				expenses = append(expenses, e)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// startOfDay returns local midnight of t's calendar day in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
