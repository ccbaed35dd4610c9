package dto

import (
	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest is one line of a new invoice. ProductName and UnitType are
// taken from the product when omitted.
type InvoiceItemRequest struct {
	ProductID   string           `json:"productId" binding:"required"`
	ProductName string           `json:"productName"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"required,gt=0"`
	UnitType    *domain.UnitType `json:"unitType" binding:"omitempty,oneof=Carton Kg Piece"`
	Price       decimal.Decimal  `json:"price" binding:"gte=0"`
}

// CreateInvoiceRequest defines the data needed to create a new invoice.
type CreateInvoiceRequest struct {
	CustomerID    *string              `json:"customerId"`
	CustomerName  *string              `json:"customerName"`
	CompanyName   string               `json:"companyName" binding:"required"`
	CompanyLogo   *string              `json:"companyLogo"`
	Items         []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	InvoiceNumber *string              `json:"invoiceNumber"`
}

// UpdateInvoiceRequest defines the invoice fields editable after creation.
type UpdateInvoiceRequest struct {
	CustomerName *string `json:"customerName"`
	CompanyName  *string `json:"companyName" binding:"omitempty,min=1"`
	CompanyLogo  *string `json:"companyLogo"`
}

// ToDomain converts the request into a domain update.
func (r UpdateInvoiceRequest) ToDomain() domain.InvoiceUpdate {
	return domain.InvoiceUpdate{CustomerName: r.CustomerName, CompanyName: r.CompanyName, CompanyLogo: r.CompanyLogo}
}

// ListInvoicesParams filters the invoice list.
type ListInvoicesParams struct {
	CustomerID  string `form:"customerId"`
	CompanyName string `form:"company"`
}
