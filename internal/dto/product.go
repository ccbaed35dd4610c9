package dto

import (
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to create a new product.
type CreateProductRequest struct {
	Name         string          `json:"name" binding:"required"`
	UnitType     domain.UnitType `json:"unitType" binding:"required,oneof=Carton Kg Piece"`
	CurrentStock decimal.Decimal `json:"currentStock" binding:"gte=0"`
}

// UpdateProductRequest defines the data allowed for updating a product.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateProductRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1"`
	UnitType     *domain.UnitType `json:"unitType" binding:"omitempty,oneof=Carton Kg Piece"`
	CurrentStock *decimal.Decimal `json:"currentStock" binding:"omitempty,gte=0"`
}

// ToDomain converts the request into a domain update.
func (r UpdateProductRequest) ToDomain() domain.ProductUpdate {
	return domain.ProductUpdate{Name: r.Name, UnitType: r.UnitType, CurrentStock: r.CurrentStock}
}

// AddStockRequest adds quantity to a product's stock.
type AddStockRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required,gt=0"`
}

// SearchParams is the query string for search endpoints.
type SearchParams struct {
	Query string `form:"q"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	UnitType     domain.UnitType `json:"unitType"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		UnitType:     p.UnitType,
		CurrentStock: p.CurrentStock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToListProductResponse converts a slice of domain.Product to a slice of ProductResponse DTOs
func ToListProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return res
}
