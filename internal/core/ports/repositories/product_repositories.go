package repositories

import (
	"context"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
)

// ProductReader defines read operations for product data
type ProductReader interface {
	// GetAll returns every product in insertion order.
	GetAll(ctx context.Context) ([]domain.Product, error)

	// GetByID returns a product or apperrors.ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// ProductWriter defines write operations for product data
type ProductWriter interface {
	// Create assigns ID and timestamps and appends the product.
	Create(ctx context.Context, product domain.Product) (*domain.Product, error)

	// Update merges the update into the stored product and refreshes UpdatedAt.
	Update(ctx context.Context, id string, update domain.ProductUpdate) (*domain.Product, error)

	// Delete removes a product and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
