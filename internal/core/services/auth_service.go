package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	"github.com/SscSPs/parkmate_app/internal/core/domain"
	portssvc "github.com/SscSPs/parkmate_app/internal/core/ports/services"
	"github.com/SscSPs/parkmate_app/internal/dto"
	"github.com/SscSPs/parkmate_app/internal/session"
	"github.com/SscSPs/parkmate_app/internal/utils"
)

// authService opens and closes sessions. Every successful sign-in and every
// sign-out is reported to the navigator.
type authService struct {
	BaseService
	users     portssvc.UserSvcFacade
	tokens    portssvc.TokenSvcFacade
	google    portssvc.GoogleOAuthHandlerSvcFacade
	navigator *session.Navigator
}

// NewAuthService creates the session service.
func NewAuthService(users portssvc.UserSvcFacade, tokens portssvc.TokenSvcFacade, google portssvc.GoogleOAuthHandlerSvcFacade, navigator *session.Navigator) portssvc.AuthSvcFacade {
	if navigator == nil {
		navigator = session.NewNavigator()
	}
	return &authService{
		users:     users,
		tokens:    tokens,
		google:    google,
		navigator: navigator,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) SignIn(ctx context.Context, req dto.LoginRequest) (*domain.Session, error) {
	user, err := s.users.AuthenticateUser(ctx, req.Email, req.Password)
	if err != nil {
		if code, ok := apperrors.AuthCodeOf(err); ok {
			s.LogInfo(ctx, "Sign-in rejected", slog.String("code", string(code)))
			return nil, err
		}
		s.LogError(ctx, err, "Sign-in failed")
		return nil, fmt.Errorf("%w: %w", apperrors.NewAuthError(apperrors.AuthLoginFailed), err)
	}
	return s.openSession(ctx, user, session.EventSignedIn)
}

func (s *authService) SignUp(ctx context.Context, req dto.RegisterRequest) (*domain.Session, error) {
	user, err := s.users.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, user, session.EventSignedUp)
}

func (s *authService) SignInWithGoogleIDToken(ctx context.Context, idToken string) (*domain.Session, error) {
	payload, err := s.google.ValidateGoogleIDToken(ctx, idToken)
	if err != nil {
		if errors.Is(err, ErrGoogleNotConfigured) {
			return nil, err
		}
		s.LogInfo(ctx, "Google ID token rejected", slog.String("error", err.Error()))
		return nil, apperrors.NewAuthError(apperrors.AuthInvalidGoogleToken)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)

	return s.SignInWithGoogleUser(ctx, &domain.GoogleUserInfo{
		ID:            payload.Subject,
		Email:         email,
		VerifiedEmail: verified,
		Name:          name,
	})
}

func (s *authService) SignInWithGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.Session, error) {
	if info == nil || info.ID == "" {
		return nil, apperrors.NewAuthError(apperrors.AuthInvalidGoogleToken)
	}
	user, err := s.users.CreateOAuthUser(ctx, info.Name, info.Email, string(domain.ProviderGoogle), info.ID, info.VerifiedEmail)
	if err != nil {
		s.LogError(ctx, err, "Failed to find or create Google user")
		return nil, err
	}
	return s.openSession(ctx, user, session.EventSignedIn)
}

func (s *authService) Refresh(ctx context.Context, req dto.RefreshTokenRequest) (*domain.Session, error) {
	user, err := s.tokens.ValidateAndParseRefreshToken(ctx, req.UserID, req.RefreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrRefreshTokenExpired) {
			_ = s.users.ClearRefreshToken(ctx, req.UserID)
			s.navigator.Unauthenticate(ctx, req.UserID, session.EventExpired)
		}
		return nil, err
	}
	return s.openSession(ctx, user, session.EventRefreshed)
}

func (s *authService) SignOut(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.ErrUnauthorized
	}
	if err := s.users.ClearRefreshToken(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token on sign-out")
		return err
	}
	s.navigator.Unauthenticate(ctx, userID, session.EventSignedOut)
	return nil
}

func (s *authService) CurrentSession(ctx context.Context, accessToken string) (*domain.User, error) {
	if accessToken == "" {
		return nil, nil
	}
	userID, err := s.tokens.ParseAccessToken(ctx, accessToken)
	if err != nil {
		return nil, nil
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	s.navigator.Authenticate(ctx, userID, session.EventRestored)
	return user, nil
}

// openSession issues an access token and a rotated refresh token.
func (s *authService) openSession(ctx context.Context, user *domain.User, ev session.Event) (*domain.Session, error) {
	accessToken, accessExpiry, err := s.tokens.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, refreshExpiry, err := s.tokens.GenerateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), refreshExpiry); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("user_id", user.UserID))
		return nil, err
	}

	s.navigator.Authenticate(ctx, user.UserID, ev)
	return &domain.Session{
		User:               user,
		AccessToken:        accessToken,
		AccessTokenExpiry:  accessExpiry,
		RefreshToken:       refreshToken,
		RefreshTokenExpiry: refreshExpiry,
	}, nil
}
