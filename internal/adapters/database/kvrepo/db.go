// Package kvrepo implements the entity repositories on top of a kvstore.Store.
// Each collection is a JSON array under a fixed key; every read is a full
// get-and-parse and every write replaces the whole array.
package kvrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/adapters/kvstore"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// DB serializes writers and hands out units of work.
type DB struct {
	store kvstore.Store
	mu    sync.RWMutex
	now   func() time.Time
	newID func() string
}

// Option configures a DB.
type Option func(*DB)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(db *DB) { db.now = now }
}

// WithIDGenerator overrides the ID source.
func WithIDGenerator(newID func() string) Option {
	return func(db *DB) { db.newID = newID }
}

// New creates a DB over store.
func New(store kvstore.Store, opts ...Option) *DB {
	db := &DB{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// WithinTx runs fn holding the write lock. Writes are staged and sent to the
// store in one Commit after fn returns nil.
func (db *DB) WithinTx(ctx context.Context, fn portsrepo.UnitOfWork) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx := newTx(db, false)
	if err := fn(ctx, tx); err != nil {
		return err
	}

	ops := tx.ops()
	if len(ops) == 0 {
		return nil
	}
	if err := db.store.Commit(ctx, ops); err != nil {
		return fmt.Errorf("failed to commit unit of work: %w", err)
	}
	return nil
}

// ReadOnly runs fn holding the read lock.
func (db *DB) ReadOnly(ctx context.Context, fn portsrepo.UnitOfWork) error {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return fn(ctx, newTx(db, true))
}

// Snapshot returns the raw value of every known key that is set.
func (db *DB) Snapshot(ctx context.Context) (map[string]json.RawMessage, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make(map[string]json.RawMessage, len(AllKeys))
	for _, key := range AllKeys {
		raw, err := db.store.Get(ctx, key)
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s for snapshot: %w", key, err)
		}
		out[key] = json.RawMessage(raw)
	}
	return out, nil
}

var (
	_ portsrepo.TransactionManager = (*DB)(nil)
	_ portsrepo.SnapshotReader     = (*DB)(nil)
)
