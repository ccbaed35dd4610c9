package kvrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/adapters/database/kvrepo"
	"github.com/SscSPs/shop_ledger_app/internal/adapters/kvstore"
	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stepClock returns a clock that advances one second per call.
func stepClock() func() time.Time {
	t := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

// MockStore is a mock implementation of kvstore.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, key string, value []byte) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *MockStore) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockStore) Commit(ctx context.Context, ops []kvstore.Op) error {
	return m.Called(ctx, ops).Error(0)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}

func newDB() *kvrepo.DB {
	return kvrepo.New(kvstore.NewMemoryStore(), kvrepo.WithClock(stepClock()))
}

func TestProductRoundTripAndUpdate(t *testing.T) {
	ctx := context.Background()
	db := newDB()

	var created *domain.Product
	err := db.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		created, err = repos.Products().Create(ctx, domain.Product{Name: "Ribeye", UnitType: domain.UnitKg, CurrentStock: decimal.NewFromInt(10)})
		return err
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	var fetched *domain.Product
	require.NoError(t, db.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		fetched, err = repos.Products().GetByID(ctx, created.ID)
		return err
	}))
	assert.Equal(t, created.Name, fetched.Name)
	assert.True(t, created.CurrentStock.Equal(fetched.CurrentStock))
	assert.True(t, created.CreatedAt.Equal(fetched.CreatedAt))

	name := "Ribeye Premium"
	var updated *domain.Product
	require.NoError(t, db.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		updated, err = repos.Products().Update(ctx, created.ID, domain.ProductUpdate{Name: &name})
		return err
	}))
	assert.Equal(t, name, updated.Name)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
}

func TestUnknownIDs(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	store.On("Get", mock.Anything, kvrepo.KeyProducts).Return(nil, kvstore.ErrKeyNotFound)
	db := kvrepo.New(store)

	err := db.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		deleted, err := repos.Products().Delete(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = repos.Products().GetByID(ctx, "nope")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		_, err = repos.Products().Update(ctx, "nope", domain.ProductUpdate{})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		return nil
	})
	require.NoError(t, err)

	// Nothing was staged, so the store never saw a commit.
	store.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
}

func TestWithinTx_ReadsOwnWritesAndCommitsOnce(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	store.On("Get", mock.Anything, mock.Anything).Return(nil, kvstore.ErrKeyNotFound)
	store.On("Commit", mock.Anything, mock.MatchedBy(func(ops []kvstore.Op) bool {
		return len(ops) == 2 && ops[0].Key == kvrepo.KeyCustomers && ops[1].Key == kvrepo.KeyLedgers
	})).Return(nil).Once()
	db := kvrepo.New(store)

	err := db.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		c, err := repos.Customers().Create(ctx, domain.Customer{Name: "Ann"})
		require.NoError(t, err)
		_, err = repos.LedgerEntries().Create(ctx, domain.LedgerEntry{CustomerID: c.ID, Type: domain.Credit, Amount: decimal.NewFromInt(5), Description: "x"})
		require.NoError(t, err)
		_, err = repos.Customers().SetBalance(ctx, c.ID, decimal.NewFromInt(5))
		require.NoError(t, err)

		got, err := repos.Customers().GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(5).Equal(got.Balance))
		return nil
	})
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestWithinTx_FailedCommitPersistsNothing(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	store.On("Get", mock.Anything, mock.Anything).Return(nil, kvstore.ErrKeyNotFound)
	store.On("Commit", mock.Anything, mock.Anything).Return(errors.New("disk full"))
	db := kvrepo.New(store)

	err := db.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		_, err := repos.Expenses().Create(ctx, domain.Expense{Category: "Rent", Description: "March", Amount: decimal.NewFromInt(1), Date: time.Now()})
		return err
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestWithinTx_FnErrorDiscardsStagedWrites(t *testing.T) {
	ctx := context.Background()
	db := newDB()
	boom := errors.New("boom")

	err := db.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		if _, err := repos.Products().Create(ctx, domain.Product{Name: "Wings", UnitType: domain.UnitPiece}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	require.NoError(t, db.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		all, err := repos.Products().GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
		return nil
	}))
}

func TestReadOnlyRejectsWrites(t *testing.T) {
	err := newDB().ReadOnly(context.Background(), func(ctx context.Context, repos portsrepo.Repositories) error {
		_, err := repos.Products().Create(ctx, domain.Product{Name: "x", UnitType: domain.UnitKg})
		return err
	})
	assert.ErrorIs(t, err, kvrepo.ErrReadOnly)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	db := newDB()

	create := func(email string) error {
		return db.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
			_, err := repos.Users().Create(ctx, domain.User{Email: email, Name: "Sam", Role: domain.RoleStaff, PasswordHash: "h"})
			return err
		})
	}

	require.NoError(t, create("sam@example.com"))
	err := create(" SAM@example.com ")
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	require.NoError(t, db.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		u, err := repos.Users().GetByEmail(ctx, "Sam@Example.com")
		require.NoError(t, err)
		assert.Equal(t, "sam@example.com", u.Email)
		all, err := repos.Users().GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
		return nil
	}))
}

func TestSessionSettingsAndSnapshot(t *testing.T) {
	ctx := context.Background()
	db := newDB()

	require.NoError(t, db.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		s, err := repos.Session().Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, s)

		require.NoError(t, repos.Session().Store(ctx, domain.Session{
			SessionUser: domain.SessionUser{ID: "u1", Email: "a@b.c", Role: domain.RoleAdmin},
			SessionID:   "s1",
		}))
		_, err = repos.CompanySettings().Get(ctx)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		first, err := repos.CompanySettings().Put(ctx, domain.CompanySettings{CompanyName: "Meat Co"})
		require.NoError(t, err)
		second, err := repos.CompanySettings().Put(ctx, domain.CompanySettings{CompanyName: "Meat Co Ltd"})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		return repos.System().SetLastBackup(ctx, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	}))

	snap, err := db.Snapshot(ctx)
	require.NoError(t, err)
	assert.Contains(t, snap, kvrepo.KeySession)
	assert.Contains(t, snap, kvrepo.KeyCompanySettings)
	assert.Contains(t, snap, kvrepo.KeyLastBackup)
	assert.NotContains(t, snap, kvrepo.KeyProducts)

	require.NoError(t, db.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		require.NoError(t, repos.Session().Remove(ctx))
		s, err := repos.Session().Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, s)

		at, err := repos.System().LastBackup(ctx)
		require.NoError(t, err)
		require.NotNil(t, at)
		assert.Equal(t, 2024, at.Year())
		return nil
	}))
}
