package kvrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/shop_ledger_app/internal/adapters/kvstore"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
)

// ErrReadOnly is returned when a write is attempted inside DB.ReadOnly.
var ErrReadOnly = errors.New("kvrepo: write attempted in read-only unit of work")

type stagedValue struct {
	value   []byte
	removed bool
}

// tx stages writes so that reads inside the same unit of work observe them.
type tx struct {
	db       *DB
	readOnly bool
	staged   map[string]stagedValue
	order    []string
}

func newTx(db *DB, readOnly bool) *tx {
	return &tx{db: db, readOnly: readOnly, staged: make(map[string]stagedValue)}
}

// get returns the current value of key and whether it exists.
func (t *tx) get(ctx context.Context, key string) ([]byte, bool, error) {
	if sv, ok := t.staged[key]; ok {
		if sv.removed {
			return nil, false, nil
		}
		return sv.value, true, nil
	}
	raw, err := t.db.store.Get(ctx, key)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return raw, true, nil
}

func (t *tx) set(key string, value []byte) error {
	return t.stage(key, stagedValue{value: value})
}

func (t *tx) remove(key string) error {
	return t.stage(key, stagedValue{removed: true})
}

func (t *tx) stage(key string, sv stagedValue) error {
	if t.readOnly {
		return ErrReadOnly
	}
	if _, seen := t.staged[key]; !seen {
		t.order = append(t.order, key)
	}
	t.staged[key] = sv
	return nil
}

// ops returns the final staged state of each touched key in first-touch order.
func (t *tx) ops() []kvstore.Op {
	ops := make([]kvstore.Op, 0, len(t.order))
	for _, key := range t.order {
		sv := t.staged[key]
		if sv.removed {
			ops = append(ops, kvstore.RemoveOp(key))
		} else {
			ops = append(ops, kvstore.SetOp(key, sv.value))
		}
	}
	return ops
}

func (t *tx) Products() portsrepo.ProductRepositoryFacade   { return &productRepository{tx: t} }
func (t *tx) Customers() portsrepo.CustomerRepositoryFacade { return &customerRepository{tx: t} }
func (t *tx) LedgerEntries() portsrepo.LedgerEntryRepositoryFacade {
	return &ledgerEntryRepository{tx: t}
}
func (t *tx) Invoices() portsrepo.InvoiceRepositoryFacade { return &invoiceRepository{tx: t} }
func (t *tx) Payments() portsrepo.PaymentRepositoryFacade { return &paymentRepository{tx: t} }
func (t *tx) Expenses() portsrepo.ExpenseRepositoryFacade { return &expenseRepository{tx: t} }
func (t *tx) Users() portsrepo.UserRepositoryFacade       { return &userRepository{tx: t} }
func (t *tx) CompanySettings() portsrepo.CompanySettingsRepository {
	return &companySettingsRepository{tx: t}
}
func (t *tx) Session() portsrepo.SessionRepository { return &sessionRepository{tx: t} }
func (t *tx) System() portsrepo.SystemRepository   { return &systemRepository{tx: t} }

var _ portsrepo.Repositories = (*tx)(nil)
