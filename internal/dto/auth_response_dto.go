package dto

import (
	"time"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
)

// AuthResponse is returned by every endpoint that opens a session.
type AuthResponse struct {
	AccessToken        string       `json:"accessToken"`
	AccessTokenExpiry  time.Time    `json:"accessTokenExpiry"`
	RefreshToken       string       `json:"refreshToken"`
	RefreshTokenExpiry time.Time    `json:"refreshTokenExpiry"`
	User               UserResponse `json:"user"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	AccessToken        string    `json:"accessToken"`
	AccessTokenExpiry  time.Time `json:"accessTokenExpiry"`
	RefreshToken       string    `json:"refreshToken"`
	RefreshTokenExpiry time.Time `json:"refreshTokenExpiry"`
}

// SessionResponse reports the navigation state of the caller.
type SessionResponse struct {
	State string        `json:"state" example:"AUTHENTICATED"`
	Route string        `json:"route" example:"/(tabs)"`
	User  *UserResponse `json:"user,omitempty"`
}

// MessageResponse carries a localized confirmation.
type MessageResponse struct {
	Message string `json:"message" example:"Your password has been changed."`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string   `json:"error" example:"No entry found for this PIN"`
	Code    string   `json:"code,omitempty" example:"auth/wrong-password"`
	Details []string `json:"details,omitempty"`
}

// ToAuthResponse converts an opened session.
func ToAuthResponse(s *domain.Session) AuthResponse {
	return AuthResponse{
		AccessToken:        s.AccessToken,
		AccessTokenExpiry:  s.AccessTokenExpiry,
		RefreshToken:       s.RefreshToken,
		RefreshTokenExpiry: s.RefreshTokenExpiry,
		User:               ToUserResponse(s.User),
	}
}

// ToRefreshTokenResponse converts a rotated session.
func ToRefreshTokenResponse(s *domain.Session) RefreshTokenResponse {
	return RefreshTokenResponse{
		AccessToken:        s.AccessToken,
		AccessTokenExpiry:  s.AccessTokenExpiry,
		RefreshToken:       s.RefreshToken,
		RefreshTokenExpiry: s.RefreshTokenExpiry,
	}
}
