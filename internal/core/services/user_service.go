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
	"github.com/SscSPs/shop_ledger_app/internal/utils"
)

type userService struct {
	BaseService
	txManager portsrepo.TransactionManager
}

// NewUserService creates a new user service.
func NewUserService(txManager portsrepo.TransactionManager, options ...ServiceOption) portssvc.UserSvcFacade {
	return &userService{BaseService: newBaseService(options...), txManager: txManager}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser hashes the password and stores the user. Without an explicit role
// the first user becomes admin and later users staff.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewValidationError("password", err.Error())
	}

	user := domain.User{
		Email:        domain.NormalizeEmail(req.Email),
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
	}

	var created *domain.User
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		if user.Role == "" {
			existing, err := repos.Users().GetAll(ctx)
			if err != nil {
				return err
			}
			user.Role = domain.RoleStaff
			if len(existing) == 0 {
				user.Role = domain.RoleAdmin
			}
		}
		if err := user.Validate(); err != nil {
			return err
		}
		created, err = repos.Users().Create(ctx, user)
		return err
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to create user", slog.String("email", user.Email))
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", created.ID), slog.String("role", string(created.Role)))
	return created, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	update := domain.UserUpdate{Name: req.Name, Role: req.Role}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, apperrors.NewValidationError("password", err.Error())
		}
		update.PasswordHash = &hash
	}

	var updated *domain.User
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		existing, err := repos.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		candidate := *existing
		update.Apply(&candidate)
		if err := candidate.Validate(); err != nil {
			return err
		}
		updated, err = repos.Users().Update(ctx, userID, update)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	return updated, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	var deleted bool
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		deleted, err = repos.Users().Delete(ctx, userID)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	if !deleted {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var user *domain.User
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		user, err = repos.Users().GetByID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		users, err = repos.Users().GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// AuthenticateUser returns apperrors.ErrNotFound for both an unknown email and a
// wrong password.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	var user *domain.User
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		user, err = repos.Users().GetByEmail(ctx, domain.NormalizeEmail(email))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch", slog.String("user_id", user.ID))
		return nil, fmt.Errorf("failed to authenticate user: %w", apperrors.ErrNotFound)
	}
	return user, nil
}
