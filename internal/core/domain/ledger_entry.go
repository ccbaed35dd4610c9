package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EntryType indicates whether a ledger entry raises or lowers what the customer owes.
type EntryType string

const (
	Credit EntryType = "credit" // increases the customer's balance (sale, money owed)
	Debit  EntryType = "debit"  // decreases the customer's balance (payment received)
)

// Valid reports whether t is credit or debit.
func (t EntryType) Valid() bool {
	return t == Credit || t == Debit
}

// SignedAmount returns amount with the sign the entry type contributes to a balance.
func (t EntryType) SignedAmount(amount decimal.Decimal) decimal.Decimal {
	if t == Debit {
		return amount.Neg()
	}
	return amount
}

// LedgerEntry is a single credit or debit against a customer.
type LedgerEntry struct {
	ID          string          `json:"id"`                  // Primary Key (UUID)
	CustomerID  string          `json:"customerId"`          // Customer.ID, may dangle
	Type        EntryType       `json:"type"`                // credit or debit
	Amount      decimal.Decimal `json:"amount"`              // always positive
	Description string          `json:"description"`         // required
	InvoiceID   *string         `json:"invoiceId,omitempty"` // set for payment debits
	AuditFields
}

// Delta is the signed change this entry makes to the customer's balance.
func (e LedgerEntry) Delta() decimal.Decimal {
	return e.Type.SignedAmount(e.Amount)
}

// Validate checks the entry fields a caller controls.
func (e LedgerEntry) Validate() error {
	if strings.TrimSpace(e.CustomerID) == "" {
		return apperrors.NewValidationError("customerId", "is required")
	}
	if !e.Type.Valid() {
		return fmt.Errorf("%w: unknown entry type %q", apperrors.ErrValidation, e.Type)
	}
	if !e.Amount.IsPositive() {
		return apperrors.NewValidationError("amount", "must be greater than zero")
	}
	if strings.TrimSpace(e.Description) == "" {
		return apperrors.NewValidationError("description", "is required")
	}
	return nil
}

// LedgerEntryUpdate lists the editable entry fields.
// Only Type and Amount changes affect the customer's balance.
type LedgerEntryUpdate struct {
	Type        *EntryType
	Amount      *decimal.Decimal
	Description *string
}

// AffectsBalance reports whether applying u can change the entry's delta.
func (u LedgerEntryUpdate) AffectsBalance() bool {
	return u.Type != nil || u.Amount != nil
}

// Apply merges the set fields into e.
func (u LedgerEntryUpdate) Apply(e *LedgerEntry) {
	if u.Type != nil {
		e.Type = *u.Type
	}
	if u.Amount != nil {
		e.Amount = *u.Amount
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
}

// StatementLine is one entry in a customer statement with the balance after it.
type StatementLine struct {
	Entry          LedgerEntry     `json:"entry"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// Statement is the chronological view of a customer's ledger.
type Statement struct {
	CustomerID     string          `json:"customerId"`
	Lines          []StatementLine `json:"lines"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	TotalCredits   decimal.Decimal `json:"totalCredits"`
	TotalDebits    decimal.Decimal `json:"totalDebits"`
	StoredBalance  decimal.Decimal `json:"storedBalance"`
	Consistent     bool            `json:"consistent"` // ClosingBalance equals the customer's stored balance
}

// BalanceCorrection reports the result of recomputing a customer's balance from its entries.
type BalanceCorrection struct {
	CustomerID string          `json:"customerId"`
	Previous   decimal.Decimal `json:"previous"`
	Corrected  decimal.Decimal `json:"corrected"`
}

// Changed reports whether the stored balance was out of sync.
func (c BalanceCorrection) Changed() bool {
	return !c.Previous.Equal(c.Corrected)
}

// SumDeltas returns the signed sum of the given entries.
func SumDeltas(entries []LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Delta())
	}
	return total
}
