package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/shop_ledger_app/cmd/docs"
	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
	"github.com/SscSPs/shop_ledger_app/internal/middleware"
	"github.com/SscSPs/shop_ledger_app/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	dto.RegisterValidators()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Metrics())

	if cfg.RateLimit != "" {
		limiterInstance, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			slog.Warn("Rate limiting disabled", slog.String("error", err.Error()))
		} else {
			r.Use(middleware.RateLimit(limiterInstance))
		}
	}

	r.GET("/", getHome)
	r.GET("/health", health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupAPIV1Routes(r, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")

	auth := newAuthHandler(services.Auth, services.Session)
	registerPublicAuthRoutes(v1, auth)

	protected := v1.Group("", middleware.AuthMiddleware(services.Token, services.Session))
	registerProtectedAuthRoutes(protected, auth)
	registerProductRoutes(protected, services.Product)
	registerCustomerRoutes(protected, services.Customer)
	registerLedgerRoutes(protected, services.Ledger)
	registerInvoiceRoutes(protected, services.Invoice)
	registerPaymentRoutes(protected, services.Payment)
	registerExpenseRoutes(protected, services.Expense)
	registerSettingsRoutes(protected, services.CompanySettings)
	registerReportingRoutes(protected, services.Reporting)

	admin := protected.Group("", middleware.RequireRole(domain.RoleAdmin))
	registerUserRoutes(admin, services.User)
	registerBackupRoutes(admin, services.Backup)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
