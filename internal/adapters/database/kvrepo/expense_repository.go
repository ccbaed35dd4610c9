package kvrepo

import (
	"context"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
)

type expenseRepository struct {
	tx *tx
}

func (r *expenseRepository) coll() collection[domain.Expense] {
	return collection[domain.Expense]{tx: r.tx, key: KeyExpenses, name: "expense", id: func(e *domain.Expense) string { return e.ID }}
}

func (r *expenseRepository) GetAll(ctx context.Context) ([]domain.Expense, error) {
	return r.coll().all(ctx)
}

func (r *expenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	return r.coll().find(ctx, id)
}

func (r *expenseRepository) Create(ctx context.Context, expense domain.Expense) (*domain.Expense, error) {
	now := r.tx.db.now()
	expense.ID = r.tx.db.newID()
	expense.AuditFields = domain.AuditFields{CreatedAt: now, UpdatedAt: now}
	if err := r.coll().insert(ctx, expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) Update(ctx context.Context, id string, update domain.ExpenseUpdate) (*domain.Expense, error) {
	return r.coll().modify(ctx, id, func(e *domain.Expense) error {
		update.Apply(e)
		e.UpdatedAt = r.tx.db.now()
		return nil
	})
}

func (r *expenseRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.coll().remove(ctx, id)
}

var _ portsrepo.ExpenseRepositoryFacade = (*expenseRepository)(nil)
