package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgGetQuery    = `SELECT value FROM kv_store WHERE key = $1`
	pgUpsertQuery = `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	pgDeleteQuery = `DELETE FROM kv_store WHERE key = $1`
)

// PostgresStore persists values in the kv_store table created by the migrations.
type PostgresStore struct {
	Pool *pgxpool.Pool
}

// NewPostgresStore wraps an open pool. The pool is owned by the caller.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{Pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.Pool.QueryRow(ctx, pgGetQuery, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.Pool.Exec(ctx, pgUpsertQuery, key, value); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	if _, err := s.Pool.Exec(ctx, pgDeleteQuery, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Commit writes every op in one SQL transaction using a batch.
func (s *PostgresStore) Commit(ctx context.Context, ops []Op) error {
	if len(ops) == 0 {
		return nil
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer s.rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, op := range ops {
		switch op.Kind {
		case OpSet:
			batch.Queue(pgUpsertQuery, op.Key, op.Value)
		case OpRemove:
			batch.Queue(pgDeleteQuery, op.Key)
		}
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute kv batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit kv batch: %w", err)
	}
	return nil
}

func (s *PostgresStore) begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// rollback is a no-op after a successful commit.
func (s *PostgresStore) rollback(ctx context.Context, tx pgx.Tx) {
	_ = tx.Rollback(ctx)
}

// Close does nothing; the pool is closed by whoever opened it.
func (s *PostgresStore) Close() error { return nil }

var _ Store = (*PostgresStore)(nil)
