package kvrepo

import (
	"context"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type customerRepository struct {
	tx *tx
}

func (r *customerRepository) coll() collection[domain.Customer] {
	return collection[domain.Customer]{tx: r.tx, key: KeyCustomers, name: "customer", id: func(c *domain.Customer) string { return c.ID }}
}

func (r *customerRepository) GetAll(ctx context.Context) ([]domain.Customer, error) {
	return r.coll().all(ctx)
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return r.coll().find(ctx, id)
}

func (r *customerRepository) Create(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	now := r.tx.db.now()
	customer.ID = r.tx.db.newID()
	customer.Balance = decimal.Zero
	customer.AuditFields = domain.AuditFields{CreatedAt: now, UpdatedAt: now}
	if err := r.coll().insert(ctx, customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Update(ctx context.Context, id string, update domain.CustomerUpdate) (*domain.Customer, error) {
	return r.coll().modify(ctx, id, func(c *domain.Customer) error {
		update.Apply(c)
		c.UpdatedAt = r.tx.db.now()
		return nil
	})
}

func (r *customerRepository) SetBalance(ctx context.Context, id string, balance decimal.Decimal) (*domain.Customer, error) {
	return r.coll().modify(ctx, id, func(c *domain.Customer) error {
		c.Balance = balance
		c.UpdatedAt = r.tx.db.now()
		return nil
	})
}

func (r *customerRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.coll().remove(ctx, id)
}

var _ portsrepo.CustomerRepositoryFacade = (*customerRepository)(nil)
