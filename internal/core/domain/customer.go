package domain

import (
	"strings"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Customer is a buyer with a running balance.
// A positive balance means the customer owes money, a negative one means credit.
// Balance always equals the signed sum of the customer's ledger entries and is
// written only by the ledger engine.
type Customer struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Address string          `json:"address"`
	Balance decimal.Decimal `json:"balance"`
	AuditFields
}

// Validate checks the required customer fields.
func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return apperrors.NewValidationError("name", "is required")
	}
	return nil
}

// Matches reports whether the customer name contains query (case-insensitive) or the phone contains it.
func (c Customer) Matches(query string) bool {
	return strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) ||
		strings.Contains(c.Phone, query)
}

// CustomerUpdate lists the editable customer fields. Balance is deliberately absent.
type CustomerUpdate struct {
	Name    *string
	Phone   *string
	Address *string
}

// Apply merges the set fields into c.
func (u CustomerUpdate) Apply(c *Customer) {
	if u.Name != nil {
		c.Name = strings.TrimSpace(*u.Name)
	}
	if u.Phone != nil {
		c.Phone = *u.Phone
	}
	if u.Address != nil {
		c.Address = *u.Address
	}
}
