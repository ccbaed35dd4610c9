package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
)

type companySettingsService struct {
	BaseService
	txManager portsrepo.TransactionManager
}

// NewCompanySettingsService creates a new company settings service.
func NewCompanySettingsService(txManager portsrepo.TransactionManager, options ...ServiceOption) portssvc.CompanySettingsSvc {
	return &companySettingsService{BaseService: newBaseService(options...), txManager: txManager}
}

var _ portssvc.CompanySettingsSvc = (*companySettingsService)(nil)

func (s *companySettingsService) GetSettings(ctx context.Context) (*domain.CompanySettings, error) {
	var settings *domain.CompanySettings
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		settings, err = repos.CompanySettings().Get(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get company settings: %w", err)
	}
	return settings, nil
}

// SaveSettings replaces the whole record.
func (s *companySettingsService) SaveSettings(ctx context.Context, req dto.SaveCompanySettingsRequest) (*domain.CompanySettings, error) {
	settings := domain.CompanySettings{
		CompanyName:    strings.TrimSpace(req.CompanyName),
		CompanyLogo:    req.CompanyLogo,
		CompanyAddress: req.CompanyAddress,
		CompanyPhone:   req.CompanyPhone,
		CompanyEmail:   req.CompanyEmail,
	}
	return s.put(ctx, func(*domain.CompanySettings) domain.CompanySettings { return settings })
}

// UpdateSettings merges the given fields into the stored record, or into an
// empty one when nothing was saved yet.
func (s *companySettingsService) UpdateSettings(ctx context.Context, req dto.UpdateCompanySettingsRequest) (*domain.CompanySettings, error) {
	update := req.ToDomain()
	return s.put(ctx, func(existing *domain.CompanySettings) domain.CompanySettings {
		var next domain.CompanySettings
		if existing != nil {
			next = *existing
		}
		update.Apply(&next)
		return next
	})
}

func (s *companySettingsService) put(ctx context.Context, build func(existing *domain.CompanySettings) domain.CompanySettings) (*domain.CompanySettings, error) {
	var saved *domain.CompanySettings
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		existing, err := repos.CompanySettings().Get(ctx)
		if err != nil && !isNotFound(err) {
			return err
		}
		next := build(existing)
		if err := next.Validate(); err != nil {
			return err
		}
		saved, err = repos.CompanySettings().Put(ctx, next)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save company settings: %w", err)
	}
	return saved, nil
}

func (s *companySettingsService) ClearSettings(ctx context.Context) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		return repos.CompanySettings().Clear(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to clear company settings: %w", err)
	}
	return nil
}
