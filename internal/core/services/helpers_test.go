package services_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/adapters/database/kvrepo"
	"github.com/SscSPs/shop_ledger_app/internal/adapters/kvstore"
	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/shop_ledger_app/internal/core/services"
	"github.com/shopspring/decimal"
)

var errCommitFailed = errors.New("store unavailable")

// flakyStore is a MemoryStore whose Commit can be made to fail.
type flakyStore struct {
	*kvstore.MemoryStore
	failCommits atomic.Bool
}

func (s *flakyStore) Commit(ctx context.Context, ops []kvstore.Op) error {
	if s.failCommits.Load() {
		return errCommitFailed
	}
	return s.MemoryStore.Commit(ctx, ops)
}

// fixedClock returns a clock that starts at start and advances one second per call.
func fixedClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

var testEpoch = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	store *flakyStore
	db    *kvrepo.DB
	opts  []services.ServiceOption
}

func newTestEnv() *testEnv {
	store := &flakyStore{MemoryStore: kvstore.NewMemoryStore()}
	return &testEnv{
		store: store,
		db:    kvrepo.New(store, kvrepo.WithClock(fixedClock(testEpoch))),
		opts:  []services.ServiceOption{services.WithClock(fixedClock(testEpoch)), services.WithLocation(time.UTC)},
	}
}

func (e *testEnv) customer(ctx context.Context, id string) *domain.Customer {
	var customer *domain.Customer
	_ = e.db.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		customer, err = repos.Customers().GetByID(ctx, id)
		return err
	})
	return customer
}

func (e *testEnv) product(ctx context.Context, id string) *domain.Product {
	var product *domain.Product
	_ = e.db.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		product, err = repos.Products().GetByID(ctx, id)
		return err
	})
	return product
}

func (e *testEnv) entriesFor(ctx context.Context, customerID string) []domain.LedgerEntry {
	var entries []domain.LedgerEntry
	_ = e.db.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		entries, err = repos.LedgerEntries().GetByCustomer(ctx, customerID)
		return err
	})
	return entries
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func ptr[T any](v T) *T {
	return &v
}

func setBalance(customerID string, balance decimal.Decimal) portsrepo.UnitOfWork {
	return func(ctx context.Context, repos portsrepo.Repositories) error {
		_, err := repos.Customers().SetBalance(ctx, customerID, balance)
		return err
	}
}
