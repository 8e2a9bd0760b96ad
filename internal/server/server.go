package server

import (
	"context"
	"log/slog"
	"net/http"

	"finflow/internal/config"
	"finflow/internal/handlers"
	"finflow/internal/middleware"
	"finflow/internal/repositories"
	"finflow/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Server bundles the Echo instance with everything it needs to serve the API.
type Server struct {
	echo   *echo.Echo
	cfg    *config.Config
	logger *slog.Logger
}

// New wires repositories, services, and handlers together and registers all
// routes. The returned server is ready to Start.
func New(cfg *config.Config, db *gorm.DB, logger *slog.Logger) *Server {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	blacklistedTokenRepo := repositories.NewBlacklistedTokenRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	entryRepo := repositories.NewEntryRepository(db)
	budgetRepo := repositories.NewBudgetRepository(db)
	summaryRepo := repositories.NewExpenseSummaryRepository(db)
	alertRepo := repositories.NewEmailAlertRepository(db)

	// Services
	metrics := services.NewPrometheusMetrics()
	passwordService := services.NewPasswordService()
	tokenService := services.NewTokenService(&cfg.JWT)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, auditRepo, blacklistedTokenRepo, passwordService, tokenService, metrics, logger)
	mailTransport := services.NewSMTPTransport(cfg.Mail)
	alertService := services.NewAlertService(alertRepo, mailTransport, cfg.Alerts, metrics, logger)
	budgetService := services.NewBudgetService(budgetRepo, summaryRepo, userRepo, alertService, logger)
	categoryService := services.NewCategoryService(categoryRepo, entryRepo, logger)
	entryService := services.NewEntryService(entryRepo, categoryRepo, budgetService, metrics, logger)
	statsService := services.NewStatsService(entryRepo, summaryRepo, categoryRepo, metrics, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, tokenService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	entryHandler := handlers.NewEntryHandler(entryService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	alertHandler := handlers.NewAlertHandler(alertService)
	statsHandler := handlers.NewStatsHandler(statsService)
	healthHandler := handlers.NewHealthCheckHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitPerSecond*2))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)
	auth.POST("/logout", authHandler.Logout)

	requireAuth := middleware.RequireAuth(tokenService, blacklistedTokenRepo)
	auth.GET("/me", authHandler.Me, requireAuth)

	protected := api.Group("", requireAuth)

	entries := protected.Group("/entries")
	entries.GET("", entryHandler.List)
	entries.POST("", entryHandler.Create)
	entries.GET("/stats", statsHandler.GetStats)
	entries.GET("/comparison", statsHandler.GetComparison)
	entries.GET("/categories", categoryHandler.List)
	entries.POST("/categories", categoryHandler.Create)
	entries.DELETE("/categories/:id", categoryHandler.Delete)
	entries.GET("/:id", entryHandler.Get)
	entries.PUT("/:id", entryHandler.Update)
	entries.DELETE("/:id", entryHandler.Delete)

	budget := protected.Group("/budget")
	budget.POST("", budgetHandler.Set)
	budget.GET("/current", budgetHandler.GetCurrent)
	budget.GET("/check", budgetHandler.Check)

	protected.POST("/email-alerts", alertHandler.Send)
	protected.GET("/email-alerts", alertHandler.List)

	protected.GET("/expense-summary/:start/:end", statsHandler.GetExpenseSummary)

	return &Server{echo: e, cfg: cfg, logger: logger}
}

// Echo exposes the underlying Echo instance, mainly for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start begins serving on the configured port and blocks until the listener
// stops.
func (s *Server) Start() error {
	addr := ":" + s.cfg.Server.Port
	s.echo.Server.ReadTimeout = s.cfg.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.cfg.Server.WriteTimeout

	s.logger.Info("Starting server", "addr", addr, "environment", s.cfg.Server.Environment)
	return s.echo.Start(addr)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
