package kvrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
)

// collection is a JSON array of T stored under key.
type collection[T any] struct {
	tx   *tx
	key  string
	name string
	id   func(*T) string
}

func (c collection[T]) all(ctx context.Context) ([]T, error) {
	raw, ok, err := c.tx.get(ctx, c.key)
	if err != nil {
		return nil, err
	}
	items := []T{}
	if !ok || len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: corrupt %s collection: %v", apperrors.ErrInternal, c.name, err)
	}
	return items, nil
}

func (c collection[T]) save(items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s collection: %w", c.name, err)
	}
	return c.tx.set(c.key, raw)
}

func (c collection[T]) notFound(id string) error {
	return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, c.name, id)
}

func (c collection[T]) find(ctx context.Context, id string) (*T, error) {
	items, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if c.id(&items[i]) == id {
			return &items[i], nil
		}
	}
	return nil, c.notFound(id)
}

func (c collection[T]) filter(ctx context.Context, keep func(*T) bool) ([]T, error) {
	items, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	out := []T{}
	for i := range items {
		if keep(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out, nil
}

func (c collection[T]) insert(ctx context.Context, item T) error {
	items, err := c.all(ctx)
	if err != nil {
		return err
	}
	return c.save(append(items, item))
}

// modify applies fn to the item with id and saves the collection.
// If fn returns an error nothing is staged.
func (c collection[T]) modify(ctx context.Context, id string, fn func(*T) error) (*T, error) {
	items, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if c.id(&items[i]) != id {
			continue
		}
		if err := fn(&items[i]); err != nil {
			return nil, err
		}
		if err := c.save(items); err != nil {
			return nil, err
		}
		updated := items[i]
		return &updated, nil
	}
	return nil, c.notFound(id)
}

func (c collection[T]) remove(ctx context.Context, id string) (bool, error) {
	items, err := c.all(ctx)
	if err != nil {
		return false, err
	}
	for i := range items {
		if c.id(&items[i]) == id {
			items = append(items[:i], items[i+1:]...)
			return true, c.save(items)
		}
	}
	return false, nil
}
