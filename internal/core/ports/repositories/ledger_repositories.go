package repositories

import (
	"context"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
)

// LedgerEntryReader defines read operations for ledger entries
type LedgerEntryReader interface {
	GetAll(ctx context.Context) ([]domain.LedgerEntry, error)
	GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error)

	// GetByCustomer returns the customer's entries in insertion order.
	GetByCustomer(ctx context.Context, customerID string) ([]domain.LedgerEntry, error)
}

// LedgerEntryWriter defines write operations for ledger entries.
// Callers are responsible for keeping customer balances in step.
type LedgerEntryWriter interface {
	Create(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error)
	Update(ctx context.Context, id string, update domain.LedgerEntryUpdate) (*domain.LedgerEntry, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// LedgerEntryRepositoryFacade combines all ledger-related repository interfaces
type LedgerEntryRepositoryFacade interface {
	LedgerEntryReader
	LedgerEntryWriter
}
