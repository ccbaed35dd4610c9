package domain

import (
	"strings"
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
)

// CompanySettings is the single record describing the business on invoices.
type CompanySettings struct {
	ID             string    `json:"id"`
	CompanyName    string    `json:"companyName"`
	CompanyLogo    *string   `json:"companyLogo,omitempty"`
	CompanyAddress *string   `json:"companyAddress,omitempty"`
	CompanyPhone   *string   `json:"companyPhone,omitempty"`
	CompanyEmail   *string   `json:"companyEmail,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Validate checks the required settings fields.
func (s CompanySettings) Validate() error {
	if strings.TrimSpace(s.CompanyName) == "" {
		return apperrors.NewValidationError("companyName", "is required")
	}
	return nil
}

type CompanySettingsUpdate struct {
	CompanyName    *string
	CompanyLogo    *string
	CompanyAddress *string
	CompanyPhone   *string
	CompanyEmail   *string
}

// Apply merges the set fields into s.
func (u CompanySettingsUpdate) Apply(s *CompanySettings) {
	if u.CompanyName != nil {
		s.CompanyName = *u.CompanyName
	}
	if u.CompanyLogo != nil {
		s.CompanyLogo = u.CompanyLogo
	}
	if u.CompanyAddress != nil {
		s.CompanyAddress = u.CompanyAddress
	}
	if u.CompanyPhone != nil {
		s.CompanyPhone = u.CompanyPhone
	}
	if u.CompanyEmail != nil {
		s.CompanyEmail = u.CompanyEmail
	}
}
