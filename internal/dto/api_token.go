package dto

import (
	"time"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
)

// APITokenResponse represents an API token in the API responses
// @Description API token details returned in API responses
type APITokenResponse struct {
	// ID is the unique identifier of the token
	ID string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Name is the user-defined name for the token
	Name string `json:"name" example:"North gate kiosk"`
	// LastUsedAt is the timestamp when the token was last used (optional)
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	// ExpiresAt is the timestamp when the token will expire (optional)
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	// CreatedAt is the timestamp when the token was created
	CreatedAt time.Time `json:"createdAt"`
}

// CreateAPITokenRequest represents the request body for creating a new API token
// @Description Request body for creating a new API token
type CreateAPITokenRequest struct {
	// Name is a user-defined name for the token (3-100 characters)
	Name string `json:"name" binding:"required,min=3,max=100" example:"North gate kiosk"`
	// ExpiresIn is the duration in seconds after which the token will expire (optional)
	ExpiresIn *int64 `json:"expiresIn,omitempty" binding:"omitempty,min=60" example:"2592000"`
}

// CreateAPITokenResponse represents the response when creating a new API token
// @Description Response returned when a new API token is created
type CreateAPITokenResponse struct {
	// Token is the actual API token (only shown once at creation)
	Token string `json:"token" example:"pm_abc123..."`
	// Details contains the token metadata
	Details APITokenResponse `json:"details"`
}

// ToAPITokenResponse converts a domain token.
func ToAPITokenResponse(t domain.APIToken) APITokenResponse {
	return APITokenResponse{
		ID:         t.ID,
		Name:       t.Name,
		LastUsedAt: t.LastUsedAt,
		ExpiresAt:  t.ExpiresAt,
		CreatedAt:  t.CreatedAt,
	}
}

// ToAPITokenResponses converts a slice of domain tokens.
func ToAPITokenResponses(tokens []domain.APIToken) []APITokenResponse {
	out := make([]APITokenResponse, len(tokens))
	for i, t := range tokens {
		out[i] = ToAPITokenResponse(t)
	}
	return out
}
