package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/parkmate_app/internal/core/services"
	"github.com/SscSPs/parkmate_app/internal/handlers"
	"github.com/SscSPs/parkmate_app/internal/i18n"
	"github.com/SscSPs/parkmate_app/internal/mailer"
	"github.com/SscSPs/parkmate_app/internal/middleware"
	"github.com/SscSPs/parkmate_app/internal/platform/config"
	"github.com/SscSPs/parkmate_app/internal/repositories/store"
	"github.com/SscSPs/parkmate_app/internal/session"
	"github.com/SscSPs/parkmate_app/internal/utils"
	"github.com/SscSPs/parkmate_app/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

//go:generate swag init --dir ../../ -g cmd/parkmate_backend/main.go -o ../docs

// @title ParkMate API
// @version 1.0
// @description Parking PIN ledger: gate entries and exits, history, payments and operator accounts.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description Gate terminal token issued from /tokens.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.LogStoreDriver != config.StoreDriverMemory {
		logger.Info("Running database migrations...")
		if _, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			logger.Error("Failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStores, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open stores", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStores()

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	navigator := session.NewNavigator(session.LoggingObserver(middleware.GetLoggerFromCtx))
	if posthogClient.IsInitialized() {
		navigator.Observe(session.AnalyticsObserver(posthogClient))
	}

	svcs := services.NewServiceContainer(cfg, repos, navigator, posthogClient,
		mailer.NewLogMailer(logger, cfg.FrontendBaseURL))

	translator, err := i18n.New(cfg.DefaultLanguage)
	if err != nil {
		logger.Error("Failed to load translations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := translator.RegisterValidatorTranslations(v); err != nil {
			logger.Error("Failed to register validator translations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.Locale(translator),
		middleware.PosthogMiddleware(posthogClient),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, svcs, translator); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("log_store", cfg.LogStoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
	}
}
