package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// GetAll retrieves every user.
	GetAll(ctx context.Context) ([]domain.User, error)

	// GetByID retrieves a specific user by their ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by normalized email, or apperrors.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// Create persists a new user. A taken email yields apperrors.ErrDuplicate.
	Create(ctx context.Context, user domain.User) (*domain.User, error)

	// Update updates an existing user's details.
	Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error)

	// Delete removes a user.
	Delete(ctx context.Context, id string) (bool, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}

// SessionRepository persists the single active-session slot.
type SessionRepository interface {
	// Load returns the active session, or nil when there is none.
	Load(ctx context.Context) (*domain.Session, error)
	Store(ctx context.Context, session domain.Session) error
	Remove(ctx context.Context) error
}

// CompanySettingsRepository persists the single company settings record.
type CompanySettingsRepository interface {
	// Get returns the settings or apperrors.ErrNotFound when never saved.
	Get(ctx context.Context) (*domain.CompanySettings, error)

	// Put replaces the record, assigning an ID on first save.
	Put(ctx context.Context, settings domain.CompanySettings) (*domain.CompanySettings, error)
	Clear(ctx context.Context) error
}

// SystemRepository holds bookkeeping values that are not entities.
type SystemRepository interface {
	LastBackup(ctx context.Context) (*time.Time, error)
	SetLastBackup(ctx context.Context, at time.Time) error
}
