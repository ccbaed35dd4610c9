package repositories

import (
	"context"
	"encoding/json"
)

// UnitOfWork runs against the repositories of a single transaction.
type UnitOfWork func(ctx context.Context, repos Repositories) error

// TransactionManager defines methods for transaction management.
// All writes made inside WithinTx are staged and committed together; if fn returns
// an error or the commit fails nothing is persisted.
type TransactionManager interface {
	// WithinTx runs fn with exclusive write access and commits its writes atomically.
	WithinTx(ctx context.Context, fn UnitOfWork) error

	// ReadOnly runs fn against a consistent view. Writes attempted inside fn fail.
	ReadOnly(ctx context.Context, fn UnitOfWork) error
}

// SnapshotReader exposes the raw stored collections, keyed by storage key.
type SnapshotReader interface {
	Snapshot(ctx context.Context) (map[string]json.RawMessage, error)
}
