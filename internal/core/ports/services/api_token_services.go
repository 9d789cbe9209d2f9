package services

import (
	"context"
	"time"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
)

// APITokenSvc manages the long-lived pm_ tokens that gate terminals send as
// x-api-key when they record entries and exits for an operator.
type APITokenSvc interface {
	// CreateToken issues a token for one terminal. The plaintext is returned
	// once; only its hash is stored. A nil expiresIn never expires.
	CreateToken(ctx context.Context, userID, name string, expiresIn *time.Duration) (string, *domain.APIToken, error)

	// ListTokens returns the operator's terminal tokens without their secrets.
	ListTokens(ctx context.Context, userID string) ([]domain.APIToken, error)

	// RevokeToken retires one terminal. Tokens of other operators are reported
	// as not found.
	RevokeToken(ctx context.Context, userID, tokenID string) error

	// RevokeAllTokens retires every terminal of the operator.
	RevokeAllTokens(ctx context.Context, userID string) error

	// ValidateToken resolves an x-api-key header to its operator and stamps
	// the token's last use. Expired tokens are revoked on sight.
	ValidateToken(ctx context.Context, tokenString string) (*domain.User, error)
}
