package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/fortuna/household-backend/internal/config"
	"github.com/dafibh/fortuna/household-backend/internal/handler"
	"github.com/dafibh/fortuna/household-backend/internal/middleware"
	"github.com/dafibh/fortuna/household-backend/internal/repository/postgres"
	"github.com/dafibh/fortuna/household-backend/internal/repository/storage"
	"github.com/dafibh/fortuna/household-backend/internal/service"
	"github.com/dafibh/fortuna/household-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title Household Finance API
// @version 1.0
// @description Household financial status, purchase price estimates and rental portfolio screening.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the Auth0 access token.
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	if err := postgres.Migrate(context.Background(), pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	householdRepo := postgres.NewHouseholdRepository(pool)
	accountRepo := postgres.NewCapitalAccountRepository(pool)
	cardRepo := postgres.NewCreditCardRepository(pool)
	loanRepo := postgres.NewLoanRepository(pool)
	houseRepo := postgres.NewHouseRepository(pool)

	// Report archive
	var reports storage.ReportRepository
	if cfg.S3.Enabled() {
		s3Repo, err := storage.NewS3ReportRepository(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3 report archive")
		}
		reports = s3Repo
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("Report archive initialized")
	} else {
		reports = storage.NewMemoryReportRepository()
		log.Warn().Msg("S3_BUCKET not set, reports are kept in memory")
	}

	// WebSocket hub for live updates
	hub := websocket.NewHub()

	// Initialize services
	authService := service.NewAuthService(userRepo, householdRepo)
	householdService := service.NewHouseholdService(householdRepo)
	accountService := service.NewCapitalAccountService(accountRepo)
	cardService := service.NewCreditCardService(cardRepo)
	loanService := service.NewLoanService(loanRepo)
	houseService := service.NewHouseService(houseRepo)
	statusService := service.NewStatusService(householdRepo, cardRepo, accountRepo, loanRepo, reports)
	portfolioService := service.NewPortfolioService(houseRepo, statusService, reports)
	reportService := service.NewReportService(reports)

	householdService.SetEventPublisher(hub)
	accountService.SetEventPublisher(hub)
	cardService.SetEventPublisher(hub)
	loanService.SetEventPublisher(hub)
	houseService.SetEventPublisher(hub)
	portfolioService.SetEventPublisher(hub)
	statusService.SetEventPublisher(hub)

	// Create household provider adapter for auth middleware and the WebSocket validator
	householdProvider := &householdProviderAdapter{authService: authService}

	// Initialize auth middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.Auth0Domain, cfg.Auth0Audience, householdProvider)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}

	wsValidator, err := websocket.NewAuth0JWTValidator(cfg.Auth0Domain, cfg.Auth0Audience, householdProvider)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create WebSocket token validator")
	}

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, middleware.DefaultBurstSize)

	// Initialize handlers
	handlers := handler.Handlers{
		Auth:           handler.NewAuthHandler(authService),
		Household:      handler.NewHouseholdHandler(householdService),
		CapitalAccount: handler.NewCapitalAccountHandler(accountService),
		CreditCard:     handler.NewCreditCardHandler(cardService),
		Loan:           handler.NewLoanHandler(loanService),
		House:          handler.NewHouseHandler(houseService),
		Status:         handler.NewStatusHandler(statusService),
		Portfolio:      handler.NewPortfolioHandler(portfolioService),
		Report:         handler.NewReportHandler(reportService),
		WebSocket:      handler.NewWebSocketHandler(hub, wsValidator, cfg.CORSOrigins),
	}

	// Background status snapshots
	var snapshotWorker *service.SnapshotWorker
	if cfg.SnapshotInterval > 0 {
		snapshotWorker = service.NewSnapshotWorker(statusService, householdRepo, log.Logger, service.SnapshotWorkerConfig{
			Interval: cfg.SnapshotInterval,
		})
		snapshotWorker.Start(context.Background())
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":     "ok",
			"ws_clients": hub.TotalClientCount(),
		})
	})

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, middleware.RateLimitMiddleware(rateLimiter), handlers,
		handler.Server{URL: "http://localhost:" + cfg.Port + "/api/v1", Description: "Local"},
	)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	if snapshotWorker != nil {
		snapshotWorker.Stop()
	}
	rateLimiter.Stop()
	hub.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// householdProviderAdapter adapts AuthService to middleware.HouseholdProvider and websocket.HouseholdLookup
type householdProviderAdapter struct {
	authService *service.AuthService
}

// GetHouseholdByAuth0ID implements middleware.HouseholdProvider
func (a *householdProviderAdapter) GetHouseholdByAuth0ID(auth0ID string) (int32, error) {
	household, err := a.authService.GetHouseholdByAuth0ID(auth0ID)
	if err != nil {
		return 0, err
	}
	return household.ID, nil
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			event := log.Info()
			if res.Status >= http.StatusInternalServerError {
				event = log.Error()
			}
			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
