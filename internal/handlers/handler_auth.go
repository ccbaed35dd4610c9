package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
	"github.com/SscSPs/shop_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// loginRate caps login attempts per client IP.
const loginRate = "5-M"

// authHandler handles signup, login, logout and the session check.
type authHandler struct {
	authService    portssvc.AuthSvc
	sessionService portssvc.SessionSvc
}

func newAuthHandler(as portssvc.AuthSvc, ss portssvc.SessionSvc) *authHandler {
	return &authHandler{authService: as, sessionService: ss}
}

// registerPublicAuthRoutes sets up the auth routes that need no token.
func registerPublicAuthRoutes(rg *gin.RouterGroup, h *authHandler) {
	rate, _ := limiter.NewRateFromFormatted(loginRate)
	limitMiddleware := limitergin.NewMiddleware(limiter.New(memory.NewStore(), rate))

	auth := rg.Group("/auth")
	{
		auth.POST("/signup", h.signup)
		auth.POST("/login", limitMiddleware, h.login)
		auth.GET("/session", h.session)
	}
}

// registerProtectedAuthRoutes sets up the auth routes that act on the active session.
func registerProtectedAuthRoutes(rg *gin.RouterGroup, h *authHandler) {
	rg.POST("/auth/logout", h.logout)
	rg.GET("/auth/me", h.me)
}

// signup godoc
// @Summary Register a user
// @Description Creates a user account and logs it in. The first account becomes admin.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already exists"
// @Failure 500 {object} ErrorResponse
// @Router /auth/signup [post]
func (h *authHandler) signup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}

	resp, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to sign up")
		return
	}

	logger.Info("User signed up", slog.String("user_id", resp.User.ID))
	c.JSON(http.StatusCreated, resp)
}

// login godoc
// @Summary User login
// @Description Verifies credentials, starts the active session and returns a JWT bound to it.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to log in")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// session godoc
// @Summary Active session
// @Description Reports whether a user is logged in and who.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/session [get]
func (h *authHandler) session(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, ok, err := h.sessionService.Get(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to load session")
		return
	}
	resp := dto.SessionResponse{Authenticated: ok}
	if ok {
		user := session.SessionUser
		resp.User = &user
	}
	c.JSON(http.StatusOK, resp)
}

// me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} domain.SessionUser
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	user, ok := middleware.GetSessionUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// logout godoc
// @Summary Log out
// @Description Clears the active session. Tokens issued for it stop working.
// @Tags auth
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		respondError(c, logger, err, "Failed to log out")
		return
	}
	logger.Info("User logged out")
	c.Status(http.StatusNoContent)
}
