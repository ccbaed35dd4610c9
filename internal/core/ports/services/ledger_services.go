package services

import (
	"context"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
)

// LedgerReaderSvc defines read operations for ledger entries
type LedgerReaderSvc interface {
	GetEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)
	ListEntries(ctx context.Context) ([]domain.LedgerEntry, error)

	// ListByCustomer returns the customer's entries, most recent first.
	ListByCustomer(ctx context.Context, customerID string) ([]domain.LedgerEntry, error)

	// Statement returns the customer's entries oldest first with running balances.
	Statement(ctx context.Context, customerID string) (*domain.Statement, error)
}

// LedgerWriterSvc defines balance-affecting ledger operations.
// Each call writes the entry and the customer balance in one unit of work.
type LedgerWriterSvc interface {
	CreateEntry(ctx context.Context, req dto.CreateLedgerEntryRequest) (*domain.LedgerEntry, error)
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateLedgerEntryRequest) (*domain.LedgerEntry, error)
	DeleteEntry(ctx context.Context, entryID string) error
}

// LedgerMaintenanceSvc repairs stored balances from the entries.
type LedgerMaintenanceSvc interface {
	RecomputeBalance(ctx context.Context, customerID string) (*domain.BalanceCorrection, error)
	RecomputeAllBalances(ctx context.Context) ([]domain.BalanceCorrection, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	LedgerMaintenanceSvc
}
