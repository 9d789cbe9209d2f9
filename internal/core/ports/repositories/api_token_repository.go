package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
)

// APITokenRepository defines the interface for API token data access operations
type APITokenRepository interface {
	// Create persists a new API token and fills in its ID and timestamps.
	Create(ctx context.Context, token *domain.APIToken) error

	// FindByID retrieves an API token by its ID
	FindByID(ctx context.Context, id string) (*domain.APIToken, error)

	// FindByUserID retrieves all API tokens for a specific user
	FindByUserID(ctx context.Context, userID string) ([]domain.APIToken, error)

	// FindByHash finds a token by the SHA-256 hash of its plaintext
	FindByHash(ctx context.Context, tokenHash string) (*domain.APIToken, error)

	// UpdateLastUsed records when the token last authenticated a request
	UpdateLastUsed(ctx context.Context, id string, usedAt time.Time) error

	// Delete revokes an API token by ID
	Delete(ctx context.Context, id string) error

	// DeleteByUserID revokes all API tokens for a specific user
	DeleteByUserID(ctx context.Context, userID string) error
}
