package kvrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
)

type userRepository struct {
	tx *tx
}

func (r *userRepository) coll() collection[domain.User] {
	return collection[domain.User]{tx: r.tx, key: KeyUsers, name: "user", id: func(u *domain.User) string { return u.ID }}
}

// GetAll retrieves every user.
func (r *userRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	return r.coll().all(ctx)
}

// GetByID retrieves a specific user by their ID.
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.coll().find(ctx, id)
}

// GetByEmail retrieves a user by email, compared case-insensitively.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	matches, err := r.coll().filter(ctx, func(u *domain.User) bool { return u.Email == email })
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: user with email %s", apperrors.ErrNotFound, email)
	}
	return &matches[0], nil
}

// Create persists a new user, rejecting an email that is already registered.
func (r *userRepository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	user.Email = domain.NormalizeEmail(user.Email)
	if _, err := r.GetByEmail(ctx, user.Email); err == nil {
		return nil, fmt.Errorf("%w: Email already exists", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := r.tx.db.now()
	user.ID = r.tx.db.newID()
	user.AuditFields = domain.AuditFields{CreatedAt: now, UpdatedAt: now}
	if err := r.coll().insert(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates an existing user's details.
func (r *userRepository) Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	return r.coll().modify(ctx, id, func(u *domain.User) error {
		update.Apply(u)
		u.UpdatedAt = r.tx.db.now()
		return nil
	})
}

// Delete removes a user.
func (r *userRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.coll().remove(ctx, id)
}

var _ portsrepo.UserRepositoryFacade = (*userRepository)(nil)

// readObject decodes the JSON object under key into dst and reports whether it was set.
func readObject(ctx context.Context, t *tx, key string, dst any) (bool, error) {
	raw, ok, err := t.get(ctx, key)
	if err != nil || !ok || len(raw) == 0 || string(raw) == "null" {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("%w: corrupt value under %s: %v", apperrors.ErrInternal, key, err)
	}
	return true, nil
}

func writeObject(t *tx, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return t.set(key, raw)
}

type sessionRepository struct {
	tx *tx
}

func (r *sessionRepository) Load(ctx context.Context) (*domain.Session, error) {
	var session domain.Session
	ok, err := readObject(ctx, r.tx, KeySession, &session)
	if err != nil || !ok {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Store(_ context.Context, session domain.Session) error {
	return writeObject(r.tx, KeySession, session)
}

func (r *sessionRepository) Remove(_ context.Context) error {
	return r.tx.remove(KeySession)
}

var _ portsrepo.SessionRepository = (*sessionRepository)(nil)

type companySettingsRepository struct {
	tx *tx
}

func (r *companySettingsRepository) Get(ctx context.Context) (*domain.CompanySettings, error) {
	var settings domain.CompanySettings
	ok, err := readObject(ctx, r.tx, KeyCompanySettings, &settings)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: company settings", apperrors.ErrNotFound)
	}
	return &settings, nil
}

func (r *companySettingsRepository) Put(ctx context.Context, settings domain.CompanySettings) (*domain.CompanySettings, error) {
	if existing, err := r.Get(ctx); err == nil {
		settings.ID = existing.ID
	}
	if settings.ID == "" {
		settings.ID = r.tx.db.newID()
	}
	settings.UpdatedAt = r.tx.db.now()
	if err := writeObject(r.tx, KeyCompanySettings, settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *companySettingsRepository) Clear(_ context.Context) error {
	return r.tx.remove(KeyCompanySettings)
}

var _ portsrepo.CompanySettingsRepository = (*companySettingsRepository)(nil)

type systemRepository struct {
	tx *tx
}

func (r *systemRepository) LastBackup(ctx context.Context) (*time.Time, error) {
	var at time.Time
	ok, err := readObject(ctx, r.tx, KeyLastBackup, &at)
	if err != nil || !ok {
		return nil, err
	}
	return &at, nil
}

func (r *systemRepository) SetLastBackup(_ context.Context, at time.Time) error {
	return writeObject(r.tx, KeyLastBackup, at.UTC())
}

var _ portsrepo.SystemRepository = (*systemRepository)(nil)
