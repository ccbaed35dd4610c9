package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

type productService struct {
	BaseService
	txManager portsrepo.TransactionManager
}

// NewProductService creates a new product service.
func NewProductService(txManager portsrepo.TransactionManager, options ...ServiceOption) portssvc.ProductSvcFacade {
	return &productService{BaseService: newBaseService(options...), txManager: txManager}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

// CreateProduct adds a product. When a product with the same name (ignoring case
// and surrounding spaces) and unit already exists, the requested stock is added
// to it instead and the existing product is returned.
func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error) {
	product := domain.Product{
		Name:         strings.TrimSpace(req.Name),
		UnitType:     req.UnitType,
		CurrentStock: req.CurrentStock,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	var (
		saved  *domain.Product
		merged bool
	)
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		existing, err := findRestockTarget(ctx, repos, product)
		if err != nil {
			return err
		}
		if existing == nil {
			saved, err = repos.Products().Create(ctx, product)
			return err
		}
		merged = true
		stock := existing.CurrentStock.Add(product.CurrentStock)
		saved, err = repos.Products().Update(ctx, existing.ID, domain.ProductUpdate{CurrentStock: &stock})
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create product", slog.String("name", product.Name))
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	if merged {
		s.LogInfo(ctx, "Stock added to existing product",
			slog.String("product_id", saved.ID),
			slog.String("quantity", product.CurrentStock.String()),
			slog.String("stock", saved.CurrentStock.String()))
		return saved, nil
	}
	s.LogInfo(ctx, "Product created", slog.String("product_id", saved.ID))
	return saved, nil
}

// findRestockTarget returns the stored product with candidate's name and unit, or nil.
func findRestockTarget(ctx context.Context, repos portsrepo.Repositories, candidate domain.Product) (*domain.Product, error) {
	products, err := repos.Products().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		p := products[i]
		if p.UnitType == candidate.UnitType && strings.EqualFold(strings.TrimSpace(p.Name), candidate.Name) {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (*domain.Product, error) {
	return s.update(ctx, productID, req.ToDomain())
}

// AddStock increases stock by quantity.
func (s *productService) AddStock(ctx context.Context, productID string, quantity decimal.Decimal) (*domain.Product, error) {
	if !quantity.IsPositive() {
		return nil, apperrors.NewValidationError("quantity", "must be greater than zero")
	}
	var updated *domain.Product
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		product, err := repos.Products().GetByID(ctx, productID)
		if err != nil {
			return err
		}
		stock := product.CurrentStock.Add(quantity)
		updated, err = repos.Products().Update(ctx, productID, domain.ProductUpdate{CurrentStock: &stock})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add stock to product %s: %w", productID, err)
	}
	s.LogInfo(ctx, "Stock added",
		slog.String("product_id", productID),
		slog.String("quantity", quantity.String()),
		slog.String("stock", updated.CurrentStock.String()))
	return updated, nil
}

// MarkOutOfStock sets stock to zero.
func (s *productService) MarkOutOfStock(ctx context.Context, productID string) (*domain.Product, error) {
	zero := decimal.Zero
	return s.update(ctx, productID, domain.ProductUpdate{CurrentStock: &zero})
}

func (s *productService) update(ctx context.Context, productID string, update domain.ProductUpdate) (*domain.Product, error) {
	var updated *domain.Product
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		existing, err := repos.Products().GetByID(ctx, productID)
		if err != nil {
			return err
		}
		candidate := *existing
		update.Apply(&candidate)
		if err := candidate.Validate(); err != nil {
			return err
		}
		updated, err = repos.Products().Update(ctx, productID, update)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", productID, err)
	}
	return updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	var deleted bool
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		deleted, err = repos.Products().Delete(ctx, productID)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", productID, err)
	}
	if !deleted {
		return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
	}
	return nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	var product *domain.Product
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		product, err = repos.Products().GetByID(ctx, productID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		products, err = repos.Products().GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *productService) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return products, nil
	}
	matches := []domain.Product{}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), query) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}
