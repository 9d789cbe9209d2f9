package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
)

// PasswordResetRepository stores single-use password reset tokens.
type PasswordResetRepository interface {
	// SaveResetToken persists a newly issued token.
	SaveResetToken(ctx context.Context, token domain.PasswordResetToken) error

	// FindResetToken looks a token up by its hash. Returns apperrors.ErrNotFound if unknown.
	FindResetToken(ctx context.Context, tokenHash string) (*domain.PasswordResetToken, error)

	// MarkResetTokenUsed consumes the token. Returns apperrors.ErrNotFound when the
	// token does not exist or was already used.
	MarkResetTokenUsed(ctx context.Context, tokenHash string, usedAt time.Time) error
}
