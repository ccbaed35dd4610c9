package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	"github.com/SscSPs/shop_ledger_app/internal/core/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
	"github.com/SscSPs/shop_ledger_app/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "shop-ledger-test",
		LowStockThreshold: 5,
		Location:          time.UTC,
	}
}

func TestSignupAssignsRolesAndRejectsDuplicates(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	users := services.NewUserService(env.db, env.opts...)

	first, err := users.CreateUser(ctx, dto.CreateUserRequest{Email: "Owner@Shop.test", Password: "correct-horse", Name: "Owner"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, first.Role)
	assert.Equal(t, "owner@shop.test", first.Email)
	assert.NotEqual(t, "correct-horse", first.PasswordHash)

	second, err := users.CreateUser(ctx, dto.CreateUserRequest{Email: "clerk@shop.test", Password: "battery-staple", Name: "Clerk"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStaff, second.Role)

	_, err = users.CreateUser(ctx, dto.CreateUserRequest{Email: "OWNER@shop.test", Password: "another-one", Name: "Dup"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	_, err = users.CreateUser(ctx, dto.CreateUserRequest{Email: "short@shop.test", Password: "abc", Name: "Short"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	all, err := users.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAuthenticateUser(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	users := services.NewUserService(env.db, env.opts...)
	_, err := users.CreateUser(ctx, dto.CreateUserRequest{Email: "a@shop.test", Password: "password-1", Name: "A"})
	require.NoError(t, err)

	user, err := users.AuthenticateUser(ctx, " A@shop.test ", "password-1")
	require.NoError(t, err)
	assert.Equal(t, "a@shop.test", user.Email)

	_, err = users.AuthenticateUser(ctx, "a@shop.test", "wrong-password")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = users.AuthenticateUser(ctx, "nobody@shop.test", "password-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLoginSessionLifecycle(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	cfg := testConfig()
	users := services.NewUserService(env.db, env.opts...)
	sessions := services.NewSessionService(env.db, env.opts...)
	tokens := services.NewTokenService(cfg)
	auth := services.NewAuthService(users, sessions, tokens, env.opts...)

	ok, err := sessions.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	signedUp, err := auth.Signup(ctx, dto.CreateUserRequest{Email: "p@shop.test", Password: "password-1", Name: "P"})
	require.NoError(t, err)
	created := signedUp.User
	assert.NotEmpty(t, signedUp.Token)

	// Signup starts a session for the new user.
	signupSession, ok, err := sessions.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created.ID, signupSession.ID)
	_, signupSessionID, err := tokens.ParseAccessToken(ctx, signedUp.Token)
	require.NoError(t, err)
	assert.Equal(t, signupSession.SessionID, signupSessionID)

	_, err = auth.Login(ctx, dto.LoginRequest{Email: "p@shop.test", Password: "nope-nope"})
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 401, appErr.Code)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	resp, err := auth.Login(ctx, dto.LoginRequest{Email: "p@shop.test", Password: "password-1"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)

	session, ok, err := sessions.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created.ID, session.ID)

	userID, sessionID, err := tokens.ParseAccessToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, session.SessionID, sessionID)

	assert.NotEqual(t, signupSession.SessionID, session.SessionID, "login replaces the signup session")

	require.NoError(t, auth.Logout(ctx))
	ok, err = sessions.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = tokens.ParseAccessToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestCompanySettings(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := services.NewCompanySettingsService(env.db, env.opts...)

	_, err := svc.GetSettings(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.UpdateSettings(ctx, dto.UpdateCompanySettingsRequest{CompanyPhone: ptr("555")})
	assert.ErrorIs(t, err, apperrors.ErrValidation, "name is required on first save")

	saved, err := svc.SaveSettings(ctx, dto.SaveCompanySettingsRequest{CompanyName: "Meat Master"})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	updated, err := svc.UpdateSettings(ctx, dto.UpdateCompanySettingsRequest{CompanyPhone: ptr("555")})
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, "Meat Master", updated.CompanyName)
	require.NotNil(t, updated.CompanyPhone)
	assert.Equal(t, "555", *updated.CompanyPhone)

	require.NoError(t, svc.ClearSettings(ctx))
	_, err = svc.GetSettings(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
