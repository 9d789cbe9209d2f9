package handlers

import (
	"context"
	"fmt"

	"github.com/SscSPs/parkmate_app/cmd/docs"
	"github.com/SscSPs/parkmate_app/internal/core/domain"
	portssvc "github.com/SscSPs/parkmate_app/internal/core/ports/services"
	"github.com/SscSPs/parkmate_app/internal/i18n"
	"github.com/SscSPs/parkmate_app/internal/middleware"
	"github.com/SscSPs/parkmate_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	translator *i18n.Translator,
) error {
	r.GET("/health", getHealth)

	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		return fmt.Errorf("invalid LOGIN_RATE_LIMIT %q: %w", cfg.LoginRateLimit, err)
	}
	exitLimiter, err := middleware.NewMemoryLimiter(cfg.ExitRateLimit)
	if err != nil {
		return fmt.Errorf("invalid EXIT_RATE_LIMIT %q: %w", cfg.ExitRateLimit, err)
	}

	authHandler := NewAuthHandler(services, translator)

	// Public authentication routes
	auth := r.Group("/api/v1/auth")
	registerAuthRoutes(auth, authHandler, middleware.RateLimit(loginLimiter))
	registerGoogleOAuthRoutes(auth, NewGoogleOAuthHandler(cfg, services, translator))

	setupAPIV1Routes(r, cfg, services, translator, authHandler, middleware.RateLimit(exitLimiter))

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the authenticated /api/v1 routes. Gate
// terminals authenticate with x-api-key, operators with a bearer JWT.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	translator *i18n.Translator,
	authHandler *AuthHandler,
	exitLimit gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1",
		middleware.APITokenAuth(services.APIToken),
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.StoredLanguage(translator, storedLanguage(services.Preference)),
	)

	registerAccountRoutes(v1.Group("/auth"), authHandler)
	registerParkingRoutes(v1, newParkingHandler(services.Parking, translator), exitLimit)
	registerPreferenceRoutes(v1, newPreferenceHandler(services.Preference, translator))
	registerUserRoutes(v1, newUserHandler(services.User, translator))
	registerAPITokenRoutes(v1, NewAPITokenHandler(services.APIToken, translator))
}

// storedLanguage reads the language a user saved. Defaults are ignored so the
// translator's own fallback applies.
func storedLanguage(prefs portssvc.PreferenceSvc) middleware.LanguageLookup {
	return func(ctx context.Context, userID string) (string, error) {
		p, err := prefs.GetPreference(ctx, userID, string(domain.PrefLanguage))
		if err != nil {
			return "", err
		}
		if p.IsDefault {
			return "", nil
		}
		return p.Value, nil
	}
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
