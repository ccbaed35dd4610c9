package repositories

import (
	"context"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
)

// InvoiceReader defines read operations for invoices
type InvoiceReader interface {
	GetAll(ctx context.Context) ([]domain.Invoice, error)
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoices
type InvoiceWriter interface {
	Create(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error)
	Update(ctx context.Context, id string, update domain.InvoiceUpdate) (*domain.Invoice, error)
	Delete(ctx context.Context, id string) (bool, error)

	// SetStatus is reserved for the invoicing workflow.
	SetStatus(ctx context.Context, id string, status domain.InvoiceStatus) (*domain.Invoice, error)
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// PaymentReader defines read operations for payments
type PaymentReader interface {
	GetAll(ctx context.Context) ([]domain.PaymentRecord, error)
	GetByID(ctx context.Context, id string) (*domain.PaymentRecord, error)
}

// PaymentWriter defines write operations for payments
type PaymentWriter interface {
	Create(ctx context.Context, payment domain.PaymentRecord) (*domain.PaymentRecord, error)
	Update(ctx context.Context, id string, update domain.PaymentUpdate) (*domain.PaymentRecord, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
