package services

import (
	"time"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parkmate_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/parkmate_app/internal/core/ports/services"
	"github.com/SscSPs/parkmate_app/internal/platform/config"
	"github.com/SscSPs/parkmate_app/internal/session"
	"github.com/SscSPs/parkmate_app/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	navigator *session.Navigator,
	analytics *utils.PosthogClientWrapper,
	mailer portssvc.Mailer,
) *portssvc.ServiceContainer {
	now := Clock(time.Now)
	container := &portssvc.ServiceContainer{}

	container.Parking = NewParkingService(
		repos.LogStore,
		WithClock(now),
		WithTariff(domain.Tariff{UnitRate: cfg.ParkingUnitRate, Currency: cfg.ParkingCurrency}),
		WithAnalytics(analytics),
	)

	// User service first since token and auth services depend on it
	container.User = NewUserService(repos.UserRepo, now)
	container.TokenService = NewTokenService(cfg, container.User, now)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg, nil)
	container.Auth = NewAuthService(container.User, container.TokenService, container.GoogleOAuthHandler, navigator)
	container.PasswordReset = NewPasswordResetService(container.User, repos.ResetRepo, mailer, cfg.PasswordResetTTL, now)
	container.Preference = NewPreferenceService(repos.PreferenceRepo, map[domain.PreferenceKey]string{
		domain.PrefTheme:    cfg.DefaultTheme,
		domain.PrefLanguage: cfg.DefaultLanguage,
	}, now)
	container.APIToken = NewAPITokenService(repos.APITokenRepo, container.User, now)

	return container
}
