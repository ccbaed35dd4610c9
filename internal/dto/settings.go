package dto

import "github.com/SscSPs/shop_ledger_app/internal/core/domain"

// SaveCompanySettingsRequest replaces the company settings.
type SaveCompanySettingsRequest struct {
	CompanyName    string  `json:"companyName" binding:"required"`
	CompanyLogo    *string `json:"companyLogo"`
	CompanyAddress *string `json:"companyAddress"`
	CompanyPhone   *string `json:"companyPhone"`
	CompanyEmail   *string `json:"companyEmail" binding:"omitempty,email"`
}

// UpdateCompanySettingsRequest changes individual company settings.
type UpdateCompanySettingsRequest struct {
	CompanyName    *string `json:"companyName" binding:"omitempty,min=1"`
	CompanyLogo    *string `json:"companyLogo"`
	CompanyAddress *string `json:"companyAddress"`
	CompanyPhone   *string `json:"companyPhone"`
	CompanyEmail   *string `json:"companyEmail" binding:"omitempty,email"`
}

// ToDomain converts the request into a domain update.
func (r UpdateCompanySettingsRequest) ToDomain() domain.CompanySettingsUpdate {
	return domain.CompanySettingsUpdate{
		CompanyName:    r.CompanyName,
		CompanyLogo:    r.CompanyLogo,
		CompanyAddress: r.CompanyAddress,
		CompanyPhone:   r.CompanyPhone,
		CompanyEmail:   r.CompanyEmail,
	}
}
