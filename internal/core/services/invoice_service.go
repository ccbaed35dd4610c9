package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
)

const (
	reasonProductNotFound   = "product not found"
	reasonInsufficientStock = "insufficient stock"
)

type invoiceService struct {
	BaseService
	txManager portsrepo.TransactionManager
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(txManager portsrepo.TransactionManager, options ...ServiceOption) portssvc.InvoiceSvcFacade {
	return &invoiceService{BaseService: newBaseService(options...), txManager: txManager}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice stores the invoice and then deducts stock item by item. An item
// whose product is missing or short on stock is reported and skipped; the
// invoice is kept either way.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.InvoiceResult, error) {
	var result *domain.InvoiceResult
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		invoice, err := s.buildInvoice(ctx, repos, req)
		if err != nil {
			return err
		}

		created, err := repos.Invoices().Create(ctx, *invoice)
		if err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		deductions := make([]domain.StockDeduction, 0, len(created.Items))
		for _, item := range created.Items {
			deduction, err := s.deductStock(ctx, repos, item)
			if err != nil {
				return err
			}
			deductions = append(deductions, deduction)
		}

		result = &domain.InvoiceResult{Invoice: *created, Deductions: deductions}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create invoice", slog.String("company", req.CompanyName))
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	invoicesCreated.Inc()
	for _, skipped := range result.SkippedDeductions() {
		stockDeductionsSkipped.WithLabelValues(skipped.Reason).Inc()
		s.LogWarn(ctx, "Stock not deducted for invoice item",
			slog.String("invoice_id", result.Invoice.ID),
			slog.String("product_id", skipped.ProductID),
			slog.String("requested", skipped.Requested.String()),
			slog.String("reason", skipped.Reason))
	}
	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", result.Invoice.ID),
		slog.String("invoice_number", result.Invoice.InvoiceNumber),
		slog.String("total", result.Invoice.Total.String()))
	return result, nil
}

// buildInvoice resolves the customer and product snapshots and computes the total.
func (s *invoiceService) buildInvoice(ctx context.Context, repos portsrepo.Repositories, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	invoice := domain.Invoice{
		CustomerName: req.CustomerName,
		CompanyName:  strings.TrimSpace(req.CompanyName),
		CompanyLogo:  req.CompanyLogo,
		Status:       domain.InvoiceSent,
		Items:        make([]domain.InvoiceItem, 0, len(req.Items)),
	}

	if req.CustomerID != nil && *req.CustomerID != "" {
		customer, err := repos.Customers().GetByID(ctx, *req.CustomerID)
		if err != nil {
			return nil, err
		}
		id := customer.ID
		invoice.CustomerID = &id
		if invoice.CustomerName == nil || strings.TrimSpace(*invoice.CustomerName) == "" {
			name := customer.Name
			invoice.CustomerName = &name
		}
	}

	for idx, itemReq := range req.Items {
		item := domain.InvoiceItem{
			ProductID:   itemReq.ProductID,
			ProductName: itemReq.ProductName,
			Quantity:    itemReq.Quantity,
			Price:       itemReq.Price,
		}
		if itemReq.UnitType != nil {
			item.UnitType = *itemReq.UnitType
		}

		product, err := repos.Products().GetByID(ctx, itemReq.ProductID)
		switch {
		case err == nil:
			if item.ProductName == "" {
				item.ProductName = product.Name
			}
			if item.UnitType == "" {
				item.UnitType = product.UnitType
			}
		case errors.Is(err, apperrors.ErrNotFound):
			if item.UnitType == "" {
				return nil, fmt.Errorf("item %d: %w", idx, apperrors.NewValidationError("unitType", "is required for an unknown product"))
			}
		default:
			return nil, err
		}
		invoice.Items = append(invoice.Items, item)
	}

	invoice.Total = domain.ComputeTotal(invoice.Items)
	if req.InvoiceNumber != nil && strings.TrimSpace(*req.InvoiceNumber) != "" {
		invoice.InvoiceNumber = strings.TrimSpace(*req.InvoiceNumber)
	} else {
		invoice.InvoiceNumber = fmt.Sprintf("INV-%d", s.Now().UnixMilli())
	}

	if err := invoice.Validate(); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// deductStock reads the product inside the unit of work, so an earlier item on
// the same invoice for the same product is already reflected.
func (s *invoiceService) deductStock(ctx context.Context, repos portsrepo.Repositories, item domain.InvoiceItem) (domain.StockDeduction, error) {
	deduction := domain.StockDeduction{ProductID: item.ProductID, Requested: item.Quantity}

	product, err := repos.Products().GetByID(ctx, item.ProductID)
	if errors.Is(err, apperrors.ErrNotFound) {
		deduction.Reason = reasonProductNotFound
		return deduction, nil
	}
	if err != nil {
		return deduction, fmt.Errorf("failed to load product %s: %w", item.ProductID, err)
	}

	deduction.StockBefore = product.CurrentStock
	deduction.StockAfter = product.CurrentStock
	next, ok := product.StockAfter(item.Quantity)
	if !ok {
		deduction.InsufficientStock = true
		deduction.Reason = reasonInsufficientStock
		return deduction, nil
	}

	if _, err := repos.Products().Update(ctx, product.ID, domain.ProductUpdate{CurrentStock: &next}); err != nil {
		return deduction, fmt.Errorf("failed to update stock for product %s: %w", product.ID, err)
	}
	deduction.Deducted = true
	deduction.StockAfter = next
	return deduction, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	update := req.ToDomain()
	var updated *domain.Invoice
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		existing, err := repos.Invoices().GetByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		candidate := *existing
		update.Apply(&candidate)
		if err := candidate.Validate(); err != nil {
			return err
		}
		updated, err = repos.Invoices().Update(ctx, invoiceID, update)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update invoice %s: %w", invoiceID, err)
	}
	return updated, nil
}

// DeleteInvoice removes the invoice. Deducted stock is not restored.
func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	var deleted bool
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		deleted, err = repos.Invoices().Delete(ctx, invoiceID)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}
	if !deleted {
		return fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
	}
	s.LogInfo(ctx, "Invoice deleted", slog.String("invoice_id", invoiceID))
	return nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	var invoice *domain.Invoice
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		invoice, err = repos.Invoices().GetByID(ctx, invoiceID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return s.filter(ctx, func(domain.Invoice) bool { return true })
}

func (s *invoiceService) ListInvoicesByCustomer(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	return s.filter(ctx, func(inv domain.Invoice) bool {
		return inv.CustomerID != nil && *inv.CustomerID == customerID
	})
}

// ListInvoicesByCompany matches the company name case-insensitively.
func (s *invoiceService) ListInvoicesByCompany(ctx context.Context, companyName string) ([]domain.Invoice, error) {
	return s.filter(ctx, func(inv domain.Invoice) bool {
		return strings.EqualFold(strings.TrimSpace(inv.CompanyName), strings.TrimSpace(companyName))
	})
}

func (s *invoiceService) filter(ctx context.Context, keep func(domain.Invoice) bool) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		all, err := repos.Invoices().GetAll(ctx)
		if err != nil {
			return err
		}
		invoices = make([]domain.Invoice, 0, len(all))
		for _, inv := range all {
			if keep(inv) {
				invoices = append(invoices, inv)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}
