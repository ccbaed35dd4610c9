package kvrepo

import (
	"context"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
)

type ledgerEntryRepository struct {
	tx *tx
}

func (r *ledgerEntryRepository) coll() collection[domain.LedgerEntry] {
	return collection[domain.LedgerEntry]{tx: r.tx, key: KeyLedgers, name: "ledger entry", id: func(e *domain.LedgerEntry) string { return e.ID }}
}

func (r *ledgerEntryRepository) GetAll(ctx context.Context) ([]domain.LedgerEntry, error) {
	return r.coll().all(ctx)
}

func (r *ledgerEntryRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	return r.coll().find(ctx, id)
}

func (r *ledgerEntryRepository) GetByCustomer(ctx context.Context, customerID string) ([]domain.LedgerEntry, error) {
	return r.coll().filter(ctx, func(e *domain.LedgerEntry) bool { return e.CustomerID == customerID })
}

func (r *ledgerEntryRepository) Create(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	now := r.tx.db.now()
	entry.ID = r.tx.db.newID()
	entry.AuditFields = domain.AuditFields{CreatedAt: now, UpdatedAt: now}
	if err := r.coll().insert(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *ledgerEntryRepository) Update(ctx context.Context, id string, update domain.LedgerEntryUpdate) (*domain.LedgerEntry, error) {
	return r.coll().modify(ctx, id, func(e *domain.LedgerEntry) error {
		update.Apply(e)
		e.UpdatedAt = r.tx.db.now()
		return nil
	})
}

func (r *ledgerEntryRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.coll().remove(ctx, id)
}

var _ portsrepo.LedgerEntryRepositoryFacade = (*ledgerEntryRepository)(nil)
