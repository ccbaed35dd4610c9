// Package kvstore provides the synchronous key-value persistence the repositories
// are built on. Every collection lives under one key as a JSON document.
package kvstore

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has never been set or was removed.
var ErrKeyNotFound = errors.New("kvstore: key not found")

// OpKind is the kind of a staged write.
type OpKind int

const (
	OpSet OpKind = iota
	OpRemove
)

// Op is one write applied by Commit.
type Op struct {
	Kind  OpKind
	Key   string
	Value []byte
}

// SetOp builds a set operation.
func SetOp(key string, value []byte) Op {
	return Op{Kind: OpSet, Key: key, Value: value}
}

// RemoveOp builds a remove operation.
func RemoveOp(key string) Op {
	return Op{Kind: OpRemove, Key: key}
}

// Store is a string-keyed byte store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error

	// Commit applies ops in order. Either all of them become visible or none do.
	Commit(ctx context.Context, ops []Op) error

	Close() error
}
