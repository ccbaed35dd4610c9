package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/core/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
	"github.com/SscSPs/shop_ledger_app/internal/handlers"
	"github.com/SscSPs/shop_ledger_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	tokens             portssvc.TokenSvc
	mockSession        *MockSessionService
	mockAuthService    *MockAuthService
	mockProductService *MockProductService
	mockInvoiceService *MockInvoiceService
	mockUserService    *MockUserService
	mockBackupService  *MockBackupService
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		IsProduction:       true,
		JWTSecret:          "test-secret-key-that-is-long-enough",
		JWTExpiryDuration:  time.Hour,
		JWTIssuer:          "shop-ledger-test",
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		Location:           time.UTC,
	}

	suite.tokens = services.NewTokenService(cfg)
	suite.mockSession = new(MockSessionService)
	suite.mockAuthService = new(MockAuthService)
	suite.mockProductService = new(MockProductService)
	suite.mockInvoiceService = new(MockInvoiceService)
	suite.mockUserService = new(MockUserService)
	suite.mockBackupService = new(MockBackupService)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Product: suite.mockProductService,
		Invoice: suite.mockInvoiceService,
		User:    suite.mockUserService,
		Auth:    suite.mockAuthService,
		Token:   suite.tokens,
		Session: suite.mockSession,
		Backup:  suite.mockBackupService,
	})
}

// login makes a session with role active and returns a token bound to it.
func (suite *HandlerTestSuite) login(role domain.Role) string {
	session := &domain.Session{
		SessionUser: domain.SessionUser{ID: "user-1", Email: "owner@shop.test", Name: "Owner", Role: role},
		SessionID:   "session-1",
		StartedAt:   time.Now(),
	}
	suite.mockSession.On("Get", mock.Anything).Return(session, true, nil)

	token, _, err := suite.tokens.GenerateAccessToken(context.Background(), *session)
	suite.Require().NoError(err)
	return token
}

func (suite *HandlerTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestProtectedRoute_RequiresToken() {
	w := suite.do(http.MethodGet, "/api/v1/products", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockProductService.AssertNotCalled(suite.T(), "SearchProducts", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestProtectedRoute_RejectsReplacedSession() {
	token := suite.login(domain.RoleStaff)
	suite.mockSession.ExpectedCalls = nil
	suite.mockSession.On("Get", mock.Anything).Return(&domain.Session{
		SessionUser: domain.SessionUser{ID: "user-1", Role: domain.RoleStaff},
		SessionID:   "session-2",
	}, true, nil)

	w := suite.do(http.MethodGet, "/api/v1/products", token, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestProtectedRoute_RejectsClearedSession() {
	token := suite.login(domain.RoleStaff)
	suite.mockSession.ExpectedCalls = nil
	suite.mockSession.On("Get", mock.Anything).Return(nil, false, nil)

	w := suite.do(http.MethodGet, "/api/v1/products", token, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestListProducts_Search() {
	token := suite.login(domain.RoleStaff)
	products := []domain.Product{
		{ID: "p-1", Name: "Beef Mince", UnitType: domain.UnitKg, CurrentStock: decimal.NewFromInt(12)},
	}
	suite.mockProductService.On("SearchProducts", mock.Anything, "beef").Return(products, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/products?q=beef", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.ProductResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal("Beef Mince", resp[0].Name)
	suite.True(resp[0].CurrentStock.Equal(decimal.NewFromInt(12)))
	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetProduct_NotFound() {
	token := suite.login(domain.RoleStaff)
	suite.mockProductService.On("GetProductByID", mock.Anything, "p-9").
		Return(nil, fmt.Errorf("failed to get product p-9: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/products/p-9", token, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(suite.errorBody(w), "not found")
}

func (suite *HandlerTestSuite) TestAddStock() {
	token := suite.login(domain.RoleStaff)
	updated := &domain.Product{ID: "p-1", Name: "Beef Mince", UnitType: domain.UnitKg, CurrentStock: decimal.NewFromInt(16)}
	suite.mockProductService.On("AddStock", mock.Anything, "p-1", mock.MatchedBy(func(q decimal.Decimal) bool {
		return q.Equal(decimal.NewFromInt(4))
	})).Return(updated, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/products/p-1/stock", token, map[string]any{"quantity": 4})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ProductResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.CurrentStock.Equal(decimal.NewFromInt(16)))
	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestAddStock_RejectsNonPositiveQuantity() {
	token := suite.login(domain.RoleStaff)

	w := suite.do(http.MethodPost, "/api/v1/products/p-1/stock", token, map[string]any{"quantity": -2})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorBody(w), "Invalid request format")
	suite.mockProductService.AssertNotCalled(suite.T(), "AddStock", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateInvoice_ReportsStockWarnings() {
	token := suite.login(domain.RoleStaff)
	result := &domain.InvoiceResult{
		Invoice: domain.Invoice{ID: "inv-1", CompanyName: "Acme", Total: decimal.NewFromInt(100), Status: domain.InvoiceSent, InvoiceNumber: "INV-1"},
		Deductions: []domain.StockDeduction{
			{ProductID: "p-1", Requested: decimal.NewFromInt(20), InsufficientStock: true, StockBefore: decimal.NewFromInt(6), StockAfter: decimal.NewFromInt(6), Reason: "insufficient stock"},
		},
	}
	suite.mockInvoiceService.On("CreateInvoice", mock.Anything, mock.MatchedBy(func(req dto.CreateInvoiceRequest) bool {
		return req.CompanyName == "Acme" && len(req.Items) == 1
	})).Return(result, nil).Once()

	body := map[string]any{
		"companyName": "Acme",
		"items": []map[string]any{
			{"productId": "p-1", "quantity": 20, "price": 5},
		},
	}
	w := suite.do(http.MethodPost, "/api/v1/invoices", token, body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp domain.InvoiceResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("inv-1", resp.Invoice.ID)
	suite.Require().Len(resp.Deductions, 1)
	suite.True(resp.Deductions[0].InsufficientStock)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateInvoice_RequiresItems() {
	token := suite.login(domain.RoleStaff)

	w := suite.do(http.MethodPost, "/api/v1/invoices", token, map[string]any{"companyName": "Acme", "items": []any{}})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockInvoiceService.AssertNotCalled(suite.T(), "CreateInvoice", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListInvoices_ByCompany() {
	token := suite.login(domain.RoleStaff)
	suite.mockInvoiceService.On("ListInvoicesByCompany", mock.Anything, "Acme").
		Return([]domain.Invoice{{ID: "inv-1", CompanyName: "Acme"}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/invoices?company=Acme", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockInvoiceService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestUsers_AdminOnly() {
	token := suite.login(domain.RoleStaff)

	w := suite.do(http.MethodGet, "/api/v1/users", token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "ListUsers", mock.Anything)
}

func (suite *HandlerTestSuite) TestUsers_ListAsAdmin() {
	token := suite.login(domain.RoleAdmin)
	suite.mockUserService.On("ListUsers", mock.Anything).
		Return([]domain.User{{ID: "user-1", Email: "owner@shop.test", Name: "Owner", Role: domain.RoleAdmin}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/users", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListUsersResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Users, 1)
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestBackup_NotConfigured() {
	token := suite.login(domain.RoleAdmin)
	suite.mockBackupService.On("Backup", mock.Anything).
		Return(nil, apperrors.NewAppError(http.StatusServiceUnavailable, "backups are not configured", nil)).Once()

	w := suite.do(http.MethodPost, "/api/v1/backup", token, nil)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("Failed to back up store", suite.errorBody(w))
}

func (suite *HandlerTestSuite) TestLogin() {
	resp := &dto.LoginResponse{
		Token:     "token",
		ExpiresAt: time.Now().Add(time.Hour),
		User:      domain.SessionUser{ID: "user-1", Email: "owner@shop.test", Role: domain.RoleAdmin},
	}
	suite.mockAuthService.On("Login", mock.Anything, dto.LoginRequest{Email: "owner@shop.test", Password: "pw"}).Return(resp, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "owner@shop.test", "password": "pw"})

	suite.Equal(http.StatusOK, w.Code)
	var got dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("token", got.Token)
}

func (suite *HandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockAuthService.On("Login", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAppError(http.StatusUnauthorized, "invalid email or password", apperrors.ErrUnauthorized)).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "owner@shop.test", "password": "nope"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("invalid email or password", suite.errorBody(w))
}

func (suite *HandlerTestSuite) TestSignup_LogsIn() {
	req := dto.CreateUserRequest{Email: "new@shop.test", Password: "password-1", Name: "New"}
	resp := &dto.LoginResponse{
		Token:     "signup-token",
		ExpiresAt: time.Now().Add(time.Hour),
		User:      domain.SessionUser{ID: "user-2", Email: "new@shop.test", Name: "New", Role: domain.RoleStaff},
	}
	suite.mockAuthService.On("Signup", mock.Anything, req).Return(resp, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/signup", "", req)

	suite.Equal(http.StatusCreated, w.Code)
	var got dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Equal("signup-token", got.Token)
	suite.Equal("user-2", got.User.ID)
	suite.mockAuthService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestInternalErrorsAreNotLeaked() {
	token := suite.login(domain.RoleStaff)
	suite.mockProductService.On("SearchProducts", mock.Anything, "").
		Return(nil, errors.New("redis: connection refused")).Once()

	w := suite.do(http.MethodGet, "/api/v1/products", token, nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to list products", suite.errorBody(w))
}
