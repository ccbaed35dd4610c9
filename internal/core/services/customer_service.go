package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
)

// OpeningBalanceDescription is the description of the entry posted for a non-zero opening balance.
const OpeningBalanceDescription = "Opening balance"

type customerService struct {
	ledgerEngine
	txManager portsrepo.TransactionManager
}

// NewCustomerService creates a new customer service.
func NewCustomerService(txManager portsrepo.TransactionManager, options ...ServiceOption) portssvc.CustomerSvcFacade {
	return &customerService{
		ledgerEngine: ledgerEngine{BaseService: newBaseService(options...)},
		txManager:    txManager,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// CreateCustomer stores the customer with a zero balance and, for a non-zero
// opening balance, posts it as the first ledger entry in the same unit of work.
func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	customer := domain.Customer{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Address: req.Address,
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Customer
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		if created, err = repos.Customers().Create(ctx, customer); err != nil {
			return err
		}
		if req.OpeningBalance == nil || req.OpeningBalance.IsZero() {
			return nil
		}

		entryType := domain.Credit
		if req.OpeningBalance.IsNegative() {
			entryType = domain.Debit
		}
		if _, err := s.postEntry(ctx, repos, domain.LedgerEntry{
			CustomerID:  created.ID,
			Type:        entryType,
			Amount:      req.OpeningBalance.Abs(),
			Description: OpeningBalanceDescription,
		}); err != nil {
			return err
		}
		created, err = repos.Customers().GetByID(ctx, created.ID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create customer", slog.String("name", customer.Name))
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.LogInfo(ctx, "Customer created", slog.String("customer_id", created.ID))
	return created, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error) {
	update := req.ToDomain()
	var updated *domain.Customer
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		existing, err := repos.Customers().GetByID(ctx, customerID)
		if err != nil {
			return err
		}
		candidate := *existing
		update.Apply(&candidate)
		if err := candidate.Validate(); err != nil {
			return err
		}
		updated, err = repos.Customers().Update(ctx, customerID, update)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update customer %s: %w", customerID, err)
	}
	return updated, nil
}

// DeleteCustomer removes the customer record. Its ledger entries are kept.
func (s *customerService) DeleteCustomer(ctx context.Context, customerID string) error {
	var deleted bool
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		deleted, err = repos.Customers().Delete(ctx, customerID)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}
	if !deleted {
		return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
	}
	s.LogInfo(ctx, "Customer deleted", slog.String("customer_id", customerID))
	return nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	var customer *domain.Customer
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		customer, err = repos.Customers().GetByID(ctx, customerID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get customer %s: %w", customerID, err)
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		customers, err = repos.Customers().GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (s *customerService) SearchCustomers(ctx context.Context, query string) ([]domain.Customer, error) {
	customers, err := s.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return customers, nil
	}
	matches := []domain.Customer{}
	for _, c := range customers {
		if c.Matches(query) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}
