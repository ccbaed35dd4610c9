package dto

import (
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest defines the data needed to create a new customer.
// OpeningBalance, when non-zero, is posted to the ledger as the first entry.
type CreateCustomerRequest struct {
	Name           string           `json:"name" binding:"required"`
	Phone          string           `json:"phone"`
	Address        string           `json:"address"`
	OpeningBalance *decimal.Decimal `json:"balance"`
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
// Balance is not editable here.
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// ToDomain converts the request into a domain update.
func (r UpdateCustomerRequest) ToDomain() domain.CustomerUpdate {
	return domain.CustomerUpdate{Name: r.Name, Phone: r.Phone, Address: r.Address}
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Address   string          `json:"address"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		Balance:   c.Balance,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToListCustomerResponse(customers []domain.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i := range customers {
		res[i] = ToCustomerResponse(&customers[i])
	}
	return res
}
