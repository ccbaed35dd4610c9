package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
	"github.com/SscSPs/shop_ledger_app/internal/platform/config"
	"github.com/SscSPs/shop_ledger_app/internal/utils"
)

// tokenService issues and validates JWT access tokens.
// It requires access to application configuration for the secret, expiry and issuer.
type tokenService struct {
	BaseService
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, options ...ServiceOption) portssvc.TokenSvc {
	return &tokenService{BaseService: newBaseService(options...), cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token bound to the session.
func (s *tokenService) GenerateAccessToken(ctx context.Context, session domain.Session) (string, time.Time, error) {
	token, expiresAt, err := utils.GenerateJWT(
		session.ID,
		session.SessionID,
		string(session.Role),
		s.cfg.JWTSecret,
		s.cfg.JWTExpiryDuration,
		s.cfg.JWTIssuer,
		s.Now(),
	)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", session.ID))
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (s *tokenService) ParseAccessToken(ctx context.Context, token string) (string, string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.cfg.JWTSecret, s.cfg.JWTIssuer)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	return claims.Subject, claims.ID, nil
}

// sessionService keeps the single active session in the store.
type sessionService struct {
	BaseService
	txManager portsrepo.TransactionManager
}

// NewSessionService creates a new session service.
func NewSessionService(txManager portsrepo.TransactionManager, options ...ServiceOption) portssvc.SessionSvc {
	return &sessionService{BaseService: newBaseService(options...), txManager: txManager}
}

// Set replaces the active session with a new one for user.
func (s *sessionService) Set(ctx context.Context, user domain.User) (*domain.Session, error) {
	sessionID, err := utils.NewSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}
	session := domain.Session{
		SessionUser: user.ToSessionUser(),
		SessionID:   sessionID,
		StartedAt:   s.Now(),
	}
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		return repos.Session().Store(ctx, session)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return &session, nil
}

func (s *sessionService) Get(ctx context.Context) (*domain.Session, bool, error) {
	var session *domain.Session
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		session, err = repos.Session().Load(ctx)
		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to load session: %w", err)
	}
	return session, session != nil, nil
}

func (s *sessionService) Clear(ctx context.Context) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		return repos.Session().Remove(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *sessionService) IsAuthenticated(ctx context.Context) (bool, error) {
	_, ok, err := s.Get(ctx)
	return ok, err
}

// authService ties user verification, the session slot and token issuing together.
type authService struct {
	BaseService
	users    portssvc.UserSvcFacade
	sessions portssvc.SessionSvc
	tokens   portssvc.TokenSvc
}

// NewAuthService creates a new auth service.
func NewAuthService(users portssvc.UserSvcFacade, sessions portssvc.SessionSvc, tokens portssvc.TokenSvc, options ...ServiceOption) portssvc.AuthSvc {
	return &authService{
		BaseService: newBaseService(options...),
		users:       users,
		sessions:    sessions,
		tokens:      tokens,
	}
}

// Signup registers a new user and logs them in, replacing any active session.
func (s *authService) Signup(ctx context.Context, req dto.CreateUserRequest) (*dto.LoginResponse, error) {
	user, err := s.users.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}
	resp, err := s.startSession(ctx, *user)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "User signed up and logged in", slog.String("user_id", user.ID))
	return resp, nil
}

// Login verifies the credentials, replaces the active session and issues a token for it.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.AuthenticateUser(ctx, req.Email, req.Password)
	if errors.Is(err, apperrors.ErrNotFound) {
		s.LogWarn(ctx, "Login failed", slog.String("email", domain.NormalizeEmail(req.Email)))
		return nil, apperrors.NewAppError(401, "invalid email or password", apperrors.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	resp, err := s.startSession(ctx, *user)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.ID))
	return resp, nil
}

// startSession makes user the active session and issues a token bound to it.
func (s *authService) startSession(ctx context.Context, user domain.User) (*dto.LoginResponse, error) {
	session, err := s.sessions.Set(ctx, user)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(ctx, *session)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	return &dto.LoginResponse{Token: token, ExpiresAt: expiresAt, User: session.SessionUser}, nil
}

func (s *authService) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

var (
	_ portssvc.TokenSvc   = (*tokenService)(nil)
	_ portssvc.SessionSvc = (*sessionService)(nil)
	_ portssvc.AuthSvc    = (*authService)(nil)
)
