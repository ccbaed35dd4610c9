package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// UnitType is the unit a product is stocked and sold in.
type UnitType string

const (
	UnitCarton UnitType = "Carton"
	UnitKg     UnitType = "Kg"
	UnitPiece  UnitType = "Piece"
)

// Valid reports whether u is one of the known unit types.
func (u UnitType) Valid() bool {
	switch u {
	case UnitCarton, UnitKg, UnitPiece:
		return true
	}
	return false
}

// Product is an inventory item.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	UnitType     UnitType        `json:"unitType"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	AuditFields
}

// Validate checks the invariants of a product that is about to be stored.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return apperrors.NewValidationError("name", "is required")
	}
	if !p.UnitType.Valid() {
		return fmt.Errorf("%w: unknown unit type %q", apperrors.ErrValidation, p.UnitType)
	}
	if p.CurrentStock.IsNegative() {
		return apperrors.NewValidationError("currentStock", "must not be negative")
	}
	return nil
}

// StockAfter returns the stock left after removing qty, and whether that is still non-negative.
func (p Product) StockAfter(qty decimal.Decimal) (decimal.Decimal, bool) {
	remaining := p.CurrentStock.Sub(qty)
	return remaining, !remaining.IsNegative()
}

// ProductUpdate lists the fields of a product that may be changed by a manual edit.
type ProductUpdate struct {
	Name         *string
	UnitType     *UnitType
	CurrentStock *decimal.Decimal
}

// Apply merges the set fields into p.
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = strings.TrimSpace(*u.Name)
	}
	if u.UnitType != nil {
		p.UnitType = *u.UnitType
	}
	if u.CurrentStock != nil {
		p.CurrentStock = *u.CurrentStock
	}
}
