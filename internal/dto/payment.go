package dto

import (
	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest defines the data needed to record a payment against an invoice.
type RecordPaymentRequest struct {
	InvoiceID     string               `json:"invoiceId" binding:"required"`
	Amount        decimal.Decimal      `json:"amount" binding:"required,gt=0"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=cash cheque online"`
	TransactionID *string              `json:"transactionId"`
	Notes         *string              `json:"notes"`
}

// UpdatePaymentRequest defines the payment fields editable after recording.
type UpdatePaymentRequest struct {
	PaymentMethod *domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,oneof=cash cheque online"`
	TransactionID *string               `json:"transactionId"`
	Notes         *string               `json:"notes"`
}

// ToDomain converts the request into a domain update.
func (r UpdatePaymentRequest) ToDomain() domain.PaymentUpdate {
	return domain.PaymentUpdate{PaymentMethod: r.PaymentMethod, TransactionID: r.TransactionID, Notes: r.Notes}
}

// ListPaymentsParams filters the payment list.
type ListPaymentsParams struct {
	InvoiceID  string `form:"invoiceId"`
	CustomerID string `form:"customerId"`
}
