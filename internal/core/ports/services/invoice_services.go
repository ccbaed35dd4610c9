package services

import (
	"context"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices
type InvoiceReaderSvc interface {
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
	ListInvoicesByCustomer(ctx context.Context, customerID string) ([]domain.Invoice, error)
	ListInvoicesByCompany(ctx context.Context, companyName string) ([]domain.Invoice, error)
}

// InvoiceWriterSvc defines write operations for invoices
type InvoiceWriterSvc interface {
	// CreateInvoice stores the invoice as sent and deducts stock per item.
	// Items whose stock would go negative are skipped and reported, never rejected.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.InvoiceResult, error)
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}

// PaymentReaderSvc defines read operations for payments
type PaymentReaderSvc interface {
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentRecord, error)
	ListPayments(ctx context.Context) ([]domain.PaymentRecord, error)
	ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.PaymentRecord, error)
	ListPaymentsByCustomer(ctx context.Context, customerID string) ([]domain.PaymentRecord, error)
}

// PaymentWriterSvc defines write operations for payments
type PaymentWriterSvc interface {
	// RecordPayment stores the payment, marks the invoice paid and debits the customer.
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest) (*domain.PaymentRecord, error)

	// UpdatePayment edits descriptive fields only.
	UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest) (*domain.PaymentRecord, error)

	// DeletePayment removes the payment and returns the invoice to sent.
	// The ledger debit posted by RecordPayment is left in place.
	DeletePayment(ctx context.Context, paymentID string) error
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
