package dto

import (
	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLedgerEntryRequest defines the data needed to post a ledger entry.
type CreateLedgerEntryRequest struct {
	CustomerID  string           `json:"customerId" binding:"required"`
	Type        domain.EntryType `json:"type" binding:"required,oneof=credit debit"`
	Amount      decimal.Decimal  `json:"amount" binding:"required,gt=0"`
	Description string           `json:"description" binding:"required"`
	InvoiceID   *string          `json:"invoiceId"`
}

// UpdateLedgerEntryRequest defines the data allowed for updating a ledger entry.
type UpdateLedgerEntryRequest struct {
	Type        *domain.EntryType `json:"type" binding:"omitempty,oneof=credit debit"`
	Amount      *decimal.Decimal  `json:"amount" binding:"omitempty,gt=0"`
	Description *string           `json:"description" binding:"omitempty,min=1"`
}

// ToDomain converts the request into a domain update.
func (r UpdateLedgerEntryRequest) ToDomain() domain.LedgerEntryUpdate {
	return domain.LedgerEntryUpdate{Type: r.Type, Amount: r.Amount, Description: r.Description}
}

// RecomputeAllResponse lists the customers whose balance was repaired.
type RecomputeAllResponse struct {
	Checked   int                        `json:"checked"`
	Corrected []domain.BalanceCorrection `json:"corrected"`
}
