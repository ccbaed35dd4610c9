package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ledgerService implements the customer ledger and its balance invariant:
// a customer's stored balance equals the signed sum of its entries.
type ledgerService struct {
	ledgerEngine
	txManager portsrepo.TransactionManager
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(txManager portsrepo.TransactionManager, options ...ServiceOption) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerEngine: ledgerEngine{BaseService: newBaseService(options...)},
		txManager:    txManager,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) CreateEntry(ctx context.Context, req dto.CreateLedgerEntryRequest) (*domain.LedgerEntry, error) {
	entry := domain.LedgerEntry{
		CustomerID:  req.CustomerID,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		InvoiceID:   req.InvoiceID,
	}

	var created *domain.LedgerEntry
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		created, err = s.postEntry(ctx, repos, entry)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create ledger entry", slog.String("customer_id", req.CustomerID))
		return nil, fmt.Errorf("failed to create ledger entry: %w", err)
	}

	s.LogInfo(ctx, "Ledger entry created",
		slog.String("entry_id", created.ID),
		slog.String("customer_id", created.CustomerID),
		slog.String("type", string(created.Type)),
		slog.String("amount", created.Amount.String()))
	return created, nil
}

func (s *ledgerService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateLedgerEntryRequest) (*domain.LedgerEntry, error) {
	var updated *domain.LedgerEntry
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		updated, err = s.reviseEntry(ctx, repos, entryID, req.ToDomain())
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update ledger entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update ledger entry %s: %w", entryID, err)
	}
	return updated, nil
}

func (s *ledgerService) DeleteEntry(ctx context.Context, entryID string) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		return s.removeEntry(ctx, repos, entryID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete ledger entry %s: %w", entryID, err)
	}
	s.LogInfo(ctx, "Ledger entry deleted", slog.String("entry_id", entryID))
	return nil
}

func (s *ledgerService) GetEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	var entry *domain.LedgerEntry
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		entry, err = repos.LedgerEntries().GetByID(ctx, entryID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entry %s: %w", entryID, err)
	}
	return entry, nil
}

func (s *ledgerService) ListEntries(ctx context.Context) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		entries, err = repos.LedgerEntries().GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}

func (s *ledgerService) ListByCustomer(ctx context.Context, customerID string) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		entries, err = repos.LedgerEntries().GetByCustomer(ctx, customerID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries for customer %s: %w", customerID, err)
	}
	return newestFirst(entries), nil
}

func (s *ledgerService) Statement(ctx context.Context, customerID string) (*domain.Statement, error) {
	var (
		customer *domain.Customer
		entries  []domain.LedgerEntry
	)
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		if customer, err = repos.Customers().GetByID(ctx, customerID); err != nil {
			return err
		}
		entries, err = repos.LedgerEntries().GetByCustomer(ctx, customerID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build statement for customer %s: %w", customerID, err)
	}

	stmt := &domain.Statement{
		CustomerID:     customerID,
		Lines:          make([]domain.StatementLine, 0, len(entries)),
		OpeningBalance: decimal.Zero,
		TotalCredits:   decimal.Zero,
		TotalDebits:    decimal.Zero,
		StoredBalance:  customer.Balance,
	}
	running := stmt.OpeningBalance
	for _, entry := range oldestFirst(entries) {
		running = running.Add(entry.Delta())
		if entry.Type == domain.Credit {
			stmt.TotalCredits = stmt.TotalCredits.Add(entry.Amount)
		} else {
			stmt.TotalDebits = stmt.TotalDebits.Add(entry.Amount)
		}
		stmt.Lines = append(stmt.Lines, domain.StatementLine{Entry: entry, RunningBalance: running})
	}
	stmt.ClosingBalance = running
	stmt.Consistent = running.Equal(customer.Balance)
	if !stmt.Consistent {
		s.LogWarn(ctx, "Stored balance differs from ledger",
			slog.String("customer_id", customerID),
			slog.String("stored", customer.Balance.String()),
			slog.String("ledger", running.String()))
	}
	return stmt, nil
}

func (s *ledgerService) RecomputeBalance(ctx context.Context, customerID string) (*domain.BalanceCorrection, error) {
	var correction *domain.BalanceCorrection
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		customer, err := repos.Customers().GetByID(ctx, customerID)
		if err != nil {
			return err
		}
		entries, err := repos.LedgerEntries().GetByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		correction, err = s.correct(ctx, repos, *customer, domain.SumDeltas(entries))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to recompute balance for customer %s: %w", customerID, err)
	}
	return correction, nil
}

func (s *ledgerService) RecomputeAllBalances(ctx context.Context) ([]domain.BalanceCorrection, error) {
	var corrections []domain.BalanceCorrection
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		customers, err := repos.Customers().GetAll(ctx)
		if err != nil {
			return err
		}
		entries, err := repos.LedgerEntries().GetAll(ctx)
		if err != nil {
			return err
		}

		sums := make(map[string]decimal.Decimal, len(customers))
		for _, entry := range entries {
			sums[entry.CustomerID] = sums[entry.CustomerID].Add(entry.Delta())
		}

		corrections = make([]domain.BalanceCorrection, 0, len(customers))
		for _, customer := range customers {
			c, err := s.correct(ctx, repos, customer, sums[customer.ID])
			if err != nil {
				return err
			}
			corrections = append(corrections, *c)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to recompute balances: %w", err)
	}
	return corrections, nil
}

// correct writes expected as the customer's balance when it differs from the stored one.
func (s *ledgerService) correct(ctx context.Context, repos portsrepo.Repositories, customer domain.Customer, expected decimal.Decimal) (*domain.BalanceCorrection, error) {
	correction := &domain.BalanceCorrection{CustomerID: customer.ID, Previous: customer.Balance, Corrected: expected}
	if !correction.Changed() {
		return correction, nil
	}
	if _, err := repos.Customers().SetBalance(ctx, customer.ID, expected); err != nil {
		return nil, err
	}
	balanceCorrections.Inc()
	s.LogWarn(ctx, "Customer balance corrected from ledger",
		slog.String("customer_id", customer.ID),
		slog.String("previous", customer.Balance.String()),
		slog.String("corrected", expected.String()))
	return correction, nil
}

// oldestFirst orders entries by CreatedAt; equal timestamps keep insertion order.
func oldestFirst(entries []domain.LedgerEntry) []domain.LedgerEntry {
	out := append([]domain.LedgerEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// newestFirst orders entries by CreatedAt descending; equal timestamps appear in reverse insertion order.
func newestFirst(entries []domain.LedgerEntry) []domain.LedgerEntry {
	out := make([]domain.LedgerEntry, len(entries))
	for i, entry := range entries {
		out[len(entries)-1-i] = entry
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
