package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payment was received.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCheque PaymentMethod = "cheque"
	PaymentOnline PaymentMethod = "online"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCheque, PaymentOnline:
		return true
	}
	return false
}

// PaymentRecord is money received against an invoice.
type PaymentRecord struct {
	ID            string          `json:"id"`
	InvoiceID     string          `json:"invoiceId"`
	CustomerID    *string         `json:"customerId,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	TransactionID *string         `json:"transactionId,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	AuditFields
}

// Validate checks the payment fields a caller controls.
func (p PaymentRecord) Validate() error {
	if strings.TrimSpace(p.InvoiceID) == "" {
		return apperrors.NewValidationError("invoiceId", "is required")
	}
	if !p.Amount.IsPositive() {
		return apperrors.NewValidationError("amount", "must be greater than zero")
	}
	if !p.PaymentMethod.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, p.PaymentMethod)
	}
	return nil
}

// LedgerDescription is the description of the debit entry posted for this payment.
func (p PaymentRecord) LedgerDescription() string {
	desc := "Payment received via " + string(p.PaymentMethod)
	if p.Notes != nil && *p.Notes != "" {
		desc += " - " + *p.Notes
	}
	return desc
}

// PaymentUpdate lists the payment fields editable after recording. Amount is not
// editable because the matching ledger debit would drift.
type PaymentUpdate struct {
	PaymentMethod *PaymentMethod
	TransactionID *string
	Notes         *string
}

// Apply merges the set fields into p.
func (u PaymentUpdate) Apply(p *PaymentRecord) {
	if u.PaymentMethod != nil {
		p.PaymentMethod = *u.PaymentMethod
	}
	if u.TransactionID != nil {
		p.TransactionID = u.TransactionID
	}
	if u.Notes != nil {
		p.Notes = u.Notes
	}
}
