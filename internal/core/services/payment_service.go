package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
)

type paymentService struct {
	ledgerEngine
	txManager portsrepo.TransactionManager
}

// NewPaymentService creates a new payment service.
func NewPaymentService(txManager portsrepo.TransactionManager, options ...ServiceOption) portssvc.PaymentSvcFacade {
	return &paymentService{
		ledgerEngine: ledgerEngine{BaseService: newBaseService(options...)},
		txManager:    txManager,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RecordPayment stores the payment, marks its invoice paid and, when the invoice
// belongs to a customer, posts a debit for the amount. Partial payments still
// mark the invoice paid.
func (s *paymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest) (*domain.PaymentRecord, error) {
	payment := domain.PaymentRecord{
		InvoiceID:     req.InvoiceID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	}
	if err := payment.Validate(); err != nil {
		return nil, err
	}

	var created *domain.PaymentRecord
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		invoice, err := repos.Invoices().GetByID(ctx, payment.InvoiceID)
		if err != nil {
			return err
		}
		payment.CustomerID = invoice.CustomerID

		if created, err = repos.Payments().Create(ctx, payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		if _, err := repos.Invoices().SetStatus(ctx, invoice.ID, domain.InvoicePaid); err != nil {
			return fmt.Errorf("failed to mark invoice %s paid: %w", invoice.ID, err)
		}

		if !invoice.HasCustomer() {
			return nil
		}
		invoiceID := invoice.ID
		_, err = s.postEntry(ctx, repos, domain.LedgerEntry{
			CustomerID:  *invoice.CustomerID,
			Type:        domain.Debit,
			Amount:      created.Amount,
			Description: created.LedgerDescription(),
			InvoiceID:   &invoiceID,
		})
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record payment", slog.String("invoice_id", req.InvoiceID))
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	paymentsRecorded.WithLabelValues(string(created.PaymentMethod)).Inc()
	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", created.ID),
		slog.String("invoice_id", created.InvoiceID),
		slog.String("amount", created.Amount.String()))
	return created, nil
}

func (s *paymentService) UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest) (*domain.PaymentRecord, error) {
	var updated *domain.PaymentRecord
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		updated, err = repos.Payments().Update(ctx, paymentID, req.ToDomain())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update payment %s: %w", paymentID, err)
	}
	return updated, nil
}

// DeletePayment removes the payment and sets its invoice back to sent. The
// ledger debit is not reversed.
func (s *paymentService) DeletePayment(ctx context.Context, paymentID string) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		payment, err := repos.Payments().GetByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if _, err := repos.Payments().Delete(ctx, paymentID); err != nil {
			return fmt.Errorf("failed to delete payment: %w", err)
		}

		_, err = repos.Invoices().SetStatus(ctx, payment.InvoiceID, domain.InvoiceSent)
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Deleted payment references unknown invoice",
				slog.String("payment_id", paymentID),
				slog.String("invoice_id", payment.InvoiceID))
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete payment %s: %w", paymentID, err)
	}
	s.LogInfo(ctx, "Payment deleted", slog.String("payment_id", paymentID))
	return nil
}

func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentRecord, error) {
	var payment *domain.PaymentRecord
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		payment, err = repos.Payments().GetByID(ctx, paymentID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get payment %s: %w", paymentID, err)
	}
	return payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context) ([]domain.PaymentRecord, error) {
	return s.filter(ctx, func(domain.PaymentRecord) bool { return true })
}

func (s *paymentService) ListPaymentsByInvoice(ctx context.Context, invoiceID string) ([]domain.PaymentRecord, error) {
	return s.filter(ctx, func(p domain.PaymentRecord) bool { return p.InvoiceID == invoiceID })
}

func (s *paymentService) ListPaymentsByCustomer(ctx context.Context, customerID string) ([]domain.PaymentRecord, error) {
	return s.filter(ctx, func(p domain.PaymentRecord) bool {
		return p.CustomerID != nil && *p.CustomerID == customerID
	})
}

func (s *paymentService) filter(ctx context.Context, keep func(domain.PaymentRecord) bool) ([]domain.PaymentRecord, error) {
	var payments []domain.PaymentRecord
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		all, err := repos.Payments().GetAll(ctx)
		if err != nil {
			return err
		}
		payments = make([]domain.PaymentRecord, 0, len(all))
		for _, p := range all {
			if keep(p) {
				payments = append(payments, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
