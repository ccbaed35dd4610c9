package domain

import (
	"strings"
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Expense is a business cost.
type Expense struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Receipt     *string         `json:"receipt,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
	AuditFields
}

// Validate checks the required expense fields.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return apperrors.NewValidationError("category", "is required")
	}
	if strings.TrimSpace(e.Description) == "" {
		return apperrors.NewValidationError("description", "is required")
	}
	if !e.Amount.IsPositive() {
		return apperrors.NewValidationError("amount", "must be greater than zero")
	}
	if e.Date.IsZero() {
		return apperrors.NewValidationError("date", "is required")
	}
	return nil
}

// ExpenseUpdate lists the editable expense fields.
type ExpenseUpdate struct {
	Category    *string
	Description *string
	Amount      *decimal.Decimal
	Date        *time.Time
	Receipt     *string
	Notes       *string
}

// Apply merges the set fields into e.
func (u ExpenseUpdate) Apply(e *Expense) {
	if u.Category != nil {
		e.Category = *u.Category
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.Amount != nil {
		e.Amount = *u.Amount
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
	if u.Receipt != nil {
		e.Receipt = u.Receipt
	}
	if u.Notes != nil {
		e.Notes = u.Notes
	}
}

// CategoryTotal is the sum of expenses in one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}
