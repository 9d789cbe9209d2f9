package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	"github.com/SscSPs/parkmate_app/internal/core/domain"
	"github.com/SscSPs/parkmate_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/parkmate_app/internal/core/ports/services"
	"github.com/SscSPs/parkmate_app/internal/utils"
)

// APITokenPrefix marks ParkMate gate-terminal tokens.
const APITokenPrefix = "pm_"

// apiTokenService implements the APITokenSvc interface
type apiTokenService struct {
	BaseService
	tokenRepo repositories.APITokenRepository
	userSvc   portssvc.UserReaderSvc
}

// NewAPITokenService creates a new instance of apiTokenService
func NewAPITokenService(tokenRepo repositories.APITokenRepository, userSvc portssvc.UserReaderSvc, now Clock) portssvc.APITokenSvc {
	return &apiTokenService{
		BaseService: BaseService{now: now},
		tokenRepo:   tokenRepo,
		userSvc:     userSvc,
	}
}

var _ portssvc.APITokenSvc = (*apiTokenService)(nil)

// CreateToken generates a new API token for the user
func (s *apiTokenService) CreateToken(ctx context.Context, userID, name string, expiresIn *time.Duration) (string, *domain.APIToken, error) {
	if userID == "" {
		return "", nil, apperrors.ErrUnauthorized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, fmt.Errorf("token name is required: %w", apperrors.ErrValidation)
	}
	if expiresIn != nil && *expiresIn <= 0 {
		return "", nil, fmt.Errorf("expiry must be positive: %w", apperrors.ErrValidation)
	}

	// 32 bytes = 256 bits
	raw, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	token := APITokenPrefix + raw

	var expiresAt *time.Time
	if expiresIn != nil {
		expiry := s.Now().UTC().Add(*expiresIn)
		expiresAt = &expiry
	}

	apiToken := &domain.APIToken{
		UserID:    userID,
		Name:      name,
		TokenHash: utils.HashToken(token),
		ExpiresAt: expiresAt,
	}

	if err := s.tokenRepo.Create(ctx, apiToken); err != nil {
		s.LogError(ctx, err, "Failed to save API token")
		return "", nil, fmt.Errorf("failed to save token: %w", err)
	}

	s.LogInfo(ctx, "API token created", slog.String("token_id", apiToken.ID), slog.String("user_id", userID))
	// The plaintext is only available here.
	return token, apiToken, nil
}

// ListTokens returns all API tokens for a user
func (s *apiTokenService) ListTokens(ctx context.Context, userID string) ([]domain.APIToken, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	tokens, err := s.tokenRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}

	return tokens, nil
}

// RevokeToken deletes a specific API token for a user
func (s *apiTokenService) RevokeToken(ctx context.Context, userID, tokenID string) error {
	if userID == "" {
		return apperrors.ErrUnauthorized
	}
	if tokenID == "" {
		return fmt.Errorf("token ID is required: %w", apperrors.ErrValidation)
	}

	token, err := s.tokenRepo.FindByID(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("failed to find token: %w", err)
	}
	// Other users' tokens are reported as missing.
	if token.UserID != userID {
		return fmt.Errorf("token %s: %w", tokenID, apperrors.ErrNotFound)
	}

	if err := s.tokenRepo.Delete(ctx, tokenID); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.LogInfo(ctx, "API token revoked", slog.String("token_id", tokenID))
	return nil
}

// RevokeAllTokens deletes all API tokens for a user
func (s *apiTokenService) RevokeAllTokens(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.ErrUnauthorized
	}

	if err := s.tokenRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke all tokens: %w", err)
	}

	return nil
}

// ValidateToken checks if a token is valid and returns the associated user
func (s *apiTokenService) ValidateToken(ctx context.Context, tokenString string) (*domain.User, error) {
	if !strings.HasPrefix(tokenString, APITokenPrefix) {
		return nil, fmt.Errorf("malformed api token: %w", apperrors.ErrUnauthorized)
	}

	token, err := s.tokenRepo.FindByHash(ctx, utils.HashToken(tokenString))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("unknown api token: %w", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	now := s.Now().UTC()
	if token.IsExpiredAt(now) {
		// Auto-revoke expired tokens
		_ = s.tokenRepo.Delete(ctx, token.ID)
		return nil, fmt.Errorf("api token expired: %w", apperrors.ErrUnauthorized)
	}

	if err := s.tokenRepo.UpdateLastUsed(ctx, token.ID, now); err != nil {
		s.LogWarn(ctx, "Failed to record API token use", slog.String("token_id", token.ID), slog.String("error", err.Error()))
	}

	user, err := s.userSvc.GetUserByID(ctx, token.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
