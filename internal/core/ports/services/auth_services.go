package services

import (
	"context"
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
)

// TokenSvc issues and validates access tokens.
type TokenSvc interface {
	GenerateAccessToken(ctx context.Context, session domain.Session) (string, time.Time, error)

	// ParseAccessToken validates a token and returns its user and session IDs.
	ParseAccessToken(ctx context.Context, token string) (userID string, sessionID string, err error)
}

// AuthSvc handles signup, login and logout. Signup also starts a session for the new user.
type AuthSvc interface {
	Signup(ctx context.Context, req dto.CreateUserRequest) (*dto.LoginResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context) error
}

// SessionSvc manages the single active session slot.
type SessionSvc interface {
	Set(ctx context.Context, user domain.User) (*domain.Session, error)
	Get(ctx context.Context) (*domain.Session, bool, error)
	Clear(ctx context.Context) error
	IsAuthenticated(ctx context.Context) (bool, error)
}

// CompanySettingsSvc manages the company settings record.
type CompanySettingsSvc interface {
	GetSettings(ctx context.Context) (*domain.CompanySettings, error)
	SaveSettings(ctx context.Context, req dto.SaveCompanySettingsRequest) (*domain.CompanySettings, error)
	UpdateSettings(ctx context.Context, req dto.UpdateCompanySettingsRequest) (*domain.CompanySettings, error)
	ClearSettings(ctx context.Context) error
}

// BackupSvc exports a snapshot of every stored collection.
type BackupSvc interface {
	Backup(ctx context.Context) (*dto.BackupResponse, error)
}
