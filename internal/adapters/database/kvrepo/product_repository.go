package kvrepo

import (
	"context"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
)

type productRepository struct {
	tx *tx
}

func (r *productRepository) coll() collection[domain.Product] {
	return collection[domain.Product]{tx: r.tx, key: KeyProducts, name: "product", id: func(p *domain.Product) string { return p.ID }}
}

func (r *productRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	return r.coll().all(ctx)
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.coll().find(ctx, id)
}

func (r *productRepository) Create(ctx context.Context, product domain.Product) (*domain.Product, error) {
	now := r.tx.db.now()
	product.ID = r.tx.db.newID()
	product.AuditFields = domain.AuditFields{CreatedAt: now, UpdatedAt: now}
	if err := r.coll().insert(ctx, product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, id string, update domain.ProductUpdate) (*domain.Product, error) {
	return r.coll().modify(ctx, id, func(p *domain.Product) error {
		update.Apply(p)
		p.UpdatedAt = r.tx.db.now()
		return nil
	})
}

func (r *productRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.coll().remove(ctx, id)
}

var _ portsrepo.ProductRepositoryFacade = (*productRepository)(nil)
