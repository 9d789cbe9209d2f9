package services

import (
	"context"
	"time"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
	"github.com/SscSPs/parkmate_app/internal/dto"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade issues and validates access and refresh tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ValidateAndParseRefreshToken validates a refresh token string against a user's stored token details.
	// It returns the user if the token is valid and not expired.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error)
	// ParseAccessToken validates an access token and returns its subject.
	ParseAccessToken(ctx context.Context, accessToken string) (string, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// GetUserInfo uses the access token to get user information from Google.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}

// AuthSvcFacade opens and closes sessions and drives the session navigator.
type AuthSvcFacade interface {
	SignIn(ctx context.Context, req dto.LoginRequest) (*domain.Session, error)
	SignUp(ctx context.Context, req dto.RegisterRequest) (*domain.Session, error)
	SignInWithGoogleIDToken(ctx context.Context, idToken string) (*domain.Session, error)
	SignInWithGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.Session, error)
	Refresh(ctx context.Context, req dto.RefreshTokenRequest) (*domain.Session, error)
	SignOut(ctx context.Context, userID string) error
	// CurrentSession resolves an access token to its user. A missing or
	// invalid token yields (nil, nil).
	CurrentSession(ctx context.Context, accessToken string) (*domain.User, error)
}

// PasswordResetSvc runs the forgot-password flow.
type PasswordResetSvc interface {
	// SendPasswordReset issues a reset token and mails it. Unknown emails are
	// reported with auth/user-not-found.
	SendPasswordReset(ctx context.Context, email string) error
	// ConfirmPasswordReset redeems a token and sets the new password.
	ConfirmPasswordReset(ctx context.Context, req dto.PasswordResetConfirmRequest) error
}

// Mailer delivers transactional email.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to string, token string, expiresAt time.Time) error
}
