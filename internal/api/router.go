package api

import (
	"database/sql"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/quotable/quotes-api/internal/api/handler"
	"github.com/quotable/quotes-api/internal/api/middleware"
	"github.com/quotable/quotes-api/internal/core/service"
	"github.com/quotable/quotes-api/internal/infrastructure/db/sqlite"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("quotes_api"))

	// --- Dependencies ---
	quoteRepo := sqlite.NewQuoteRepository(db)
	authRepo := sqlite.NewAuthRepository(db)
	topicRepo := sqlite.NewTopicRepository(db)

	quoteService := service.NewQuoteService(quoteRepo, log)
	authService := service.NewAuthService(authRepo, jwtSecret, tokenTTL)
	topicService := service.NewTopicService(topicRepo, log)
	userService := service.NewUserService(authRepo)

	quoteHandler := handler.NewQuoteHandler(quoteService)
	authHandler := handler.NewAuthHandler(authService)
	topicHandler := handler.NewTopicHandler(topicService)
	userHandler := handler.NewUserHandler(userService)

	requireAuth := middleware.Auth(jwtSecret)
	optionalAuth := middleware.OptionalAuth(jwtSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Quote routes ---
	// Reads take optional auth: anonymous callers get the public-only view.
	e.GET("/quotes", quoteHandler.List, optionalAuth)
	e.GET("/quotes/:id", quoteHandler.Get, optionalAuth)
	e.POST("/quotes", quoteHandler.Create, requireAuth)
	e.PUT("/quotes/:id", quoteHandler.Update, requireAuth)
	e.DELETE("/quotes/:id", quoteHandler.Delete, requireAuth)

	// --- Reference data and account ---
	e.GET("/topics", topicHandler.List)
	e.GET("/user", userHandler.Me, requireAuth)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
