package services

import (
	"context"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ProductReaderSvc defines read operations for products
type ProductReaderSvc interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// SearchProducts matches the query case-insensitively against product names.
	SearchProducts(ctx context.Context, query string) ([]domain.Product, error)
}

// ProductWriterSvc defines write operations for products
type ProductWriterSvc interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

// ProductStockSvc defines manual stock adjustments
type ProductStockSvc interface {
	// AddStock increases stock by a positive quantity.
	AddStock(ctx context.Context, productID string, quantity decimal.Decimal) (*domain.Product, error)

	// MarkOutOfStock forces stock to zero.
	MarkOutOfStock(ctx context.Context, productID string) (*domain.Product, error)
}

// ProductSvcFacade combines all product-related service interfaces
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
	ProductStockSvc
}
