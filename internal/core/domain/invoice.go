package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "draft"
	InvoiceSent  InvoiceStatus = "sent"
	InvoicePaid  InvoiceStatus = "paid"
)

// InvoiceItem is a line on an invoice. ProductName and UnitType are captured at sale time.
type InvoiceItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitType    UnitType        `json:"unitType"`
	Price       decimal.Decimal `json:"price"`
}

// LineTotal is Quantity times Price.
func (i InvoiceItem) LineTotal() decimal.Decimal {
	return i.Quantity.Mul(i.Price)
}

// Validate checks a single item.
func (i InvoiceItem) Validate() error {
	if strings.TrimSpace(i.ProductID) == "" {
		return apperrors.NewValidationError("productId", "is required")
	}
	if !i.Quantity.IsPositive() {
		return apperrors.NewValidationError("quantity", "must be greater than zero")
	}
	if i.Price.IsNegative() {
		return apperrors.NewValidationError("price", "must not be negative")
	}
	return nil
}

// Invoice is a sale document listing items sold to a customer or company.
type Invoice struct {
	ID            string          `json:"id"`
	CustomerID    *string         `json:"customerId,omitempty"`
	CustomerName  *string         `json:"customerName,omitempty"`
	CompanyName   string          `json:"companyName"`
	CompanyLogo   *string         `json:"companyLogo,omitempty"`
	Items         []InvoiceItem   `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Status        InvoiceStatus   `json:"status"`
	InvoiceNumber string          `json:"invoiceNumber"`
	AuditFields
}

// HasCustomer reports whether the invoice is linked to a customer account.
func (inv Invoice) HasCustomer() bool {
	return inv.CustomerID != nil && *inv.CustomerID != ""
}

// Validate checks the fields required before an invoice can be stored.
func (inv Invoice) Validate() error {
	if strings.TrimSpace(inv.CompanyName) == "" {
		return apperrors.NewValidationError("companyName", "is required")
	}
	if len(inv.Items) == 0 {
		return apperrors.NewValidationError("items", "must not be empty")
	}
	for idx, item := range inv.Items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", idx, err)
		}
	}
	return nil
}

// ComputeTotal returns Σ Quantity*Price across items.
func ComputeTotal(items []InvoiceItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// InvoiceUpdate lists the invoice fields editable after creation.
// Items, Total and Status are owned by the invoicing workflow.
type InvoiceUpdate struct {
	CustomerName *string
	CompanyName  *string
	CompanyLogo  *string
}

// Apply merges the set fields into inv.
func (u InvoiceUpdate) Apply(inv *Invoice) {
	if u.CustomerName != nil {
		inv.CustomerName = u.CustomerName
	}
	if u.CompanyName != nil {
		inv.CompanyName = *u.CompanyName
	}
	if u.CompanyLogo != nil {
		inv.CompanyLogo = u.CompanyLogo
	}
}

// StockDeduction reports what happened to one invoice item's stock.
type StockDeduction struct {
	ProductID         string          `json:"productId"`
	Requested         decimal.Decimal `json:"requested"`
	Deducted          bool            `json:"deducted"`
	InsufficientStock bool            `json:"insufficientStock"`
	StockBefore       decimal.Decimal `json:"stockBefore"`
	StockAfter        decimal.Decimal `json:"stockAfter"`
	Reason            string          `json:"reason,omitempty"`
}

// InvoiceResult is returned by invoice creation.
type InvoiceResult struct {
	Invoice    Invoice          `json:"invoice"`
	Deductions []StockDeduction `json:"deductions"`
}

// SkippedDeductions returns the deductions that did not touch stock.
func (r InvoiceResult) SkippedDeductions() []StockDeduction {
	var skipped []StockDeduction
	for _, d := range r.Deductions {
		if !d.Deducted {
			skipped = append(skipped, d)
		}
	}
	return skipped
}
