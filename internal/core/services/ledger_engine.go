package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// ledgerEngine applies ledger entries to customer balances. Its methods run
// inside a unit of work so the entry and balance writes commit together.
type ledgerEngine struct {
	BaseService
}

// postEntry persists entry and adds its delta to the customer's balance.
// A missing customer is logged and the entry is kept.
func (e *ledgerEngine) postEntry(ctx context.Context, repos portsrepo.Repositories, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	created, err := repos.LedgerEntries().Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger entry: %w", err)
	}

	if err := e.applyDelta(ctx, repos, created.CustomerID, created.Delta()); err != nil {
		return nil, err
	}
	ledgerEntriesPosted.WithLabelValues(string(created.Type)).Inc()
	return created, nil
}

// reviseEntry updates an entry and moves the balance by the difference between the new and old deltas.
func (e *ledgerEngine) reviseEntry(ctx context.Context, repos portsrepo.Repositories, entryID string, update domain.LedgerEntryUpdate) (*domain.LedgerEntry, error) {
	existing, err := repos.LedgerEntries().GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	candidate := *existing
	update.Apply(&candidate)
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	updated, err := repos.LedgerEntries().Update(ctx, entryID, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update ledger entry: %w", err)
	}

	if update.AffectsBalance() {
		diff := updated.Delta().Sub(existing.Delta())
		if !diff.IsZero() {
			if err := e.applyDelta(ctx, repos, updated.CustomerID, diff); err != nil {
				return nil, err
			}
		}
	}
	return updated, nil
}

// removeEntry deletes an entry and reverses its delta.
func (e *ledgerEngine) removeEntry(ctx context.Context, repos portsrepo.Repositories, entryID string) error {
	existing, err := repos.LedgerEntries().GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if _, err := repos.LedgerEntries().Delete(ctx, entryID); err != nil {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}
	return e.applyDelta(ctx, repos, existing.CustomerID, existing.Delta().Neg())
}

func (e *ledgerEngine) applyDelta(ctx context.Context, repos portsrepo.Repositories, customerID string, delta decimal.Decimal) error {
	customer, err := repos.Customers().GetByID(ctx, customerID)
	if errors.Is(err, apperrors.ErrNotFound) {
		e.LogWarn(ctx, "Ledger entry references unknown customer, balance not updated",
			slog.String("customer_id", customerID),
			slog.String("delta", delta.String()))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load customer %s: %w", customerID, err)
	}

	if _, err := repos.Customers().SetBalance(ctx, customerID, customer.Balance.Add(delta)); err != nil {
		return fmt.Errorf("failed to update balance for customer %s: %w", customerID, err)
	}
	return nil
}
