package dto

import (
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest defines the data needed to record an expense.
type CreateExpenseRequest struct {
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Date        time.Time       `json:"date" binding:"required"`
	Receipt     *string         `json:"receipt"`
	Notes       *string         `json:"notes"`
}

// UpdateExpenseRequest defines the data allowed for updating an expense.
type UpdateExpenseRequest struct {
	Category    *string          `json:"category" binding:"omitempty,min=1"`
	Description *string          `json:"description" binding:"omitempty,min=1"`
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,gt=0"`
	Date        *time.Time       `json:"date"`
	Receipt     *string          `json:"receipt"`
	Notes       *string          `json:"notes"`
}

// ToDomain converts the request into a domain update.
func (r UpdateExpenseRequest) ToDomain() domain.ExpenseUpdate {
	return domain.ExpenseUpdate{
		Category:    r.Category,
		Description: r.Description,
		Amount:      r.Amount,
		Date:        r.Date,
		Receipt:     r.Receipt,
		Notes:       r.Notes,
	}
}

// ListExpensesParams filters the expense list. Period is one of today or month;
// Start and End select an inclusive range of calendar days.
type ListExpensesParams struct {
	Category string    `form:"category"`
	Period   string    `form:"period" binding:"omitempty,oneof=today month"`
	Start    time.Time `form:"start" time_format:"2006-01-02"`
	End      time.Time `form:"end" time_format:"2006-01-02"`
}
