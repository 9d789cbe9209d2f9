package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	"github.com/SscSPs/parkmate_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parkmate_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/parkmate_app/internal/core/ports/services"
	"github.com/SscSPs/parkmate_app/internal/dto"
	"github.com/SscSPs/parkmate_app/internal/utils"
)

type passwordResetService struct {
	BaseService
	users  portssvc.UserSvcFacade
	resets portsrepo.PasswordResetRepository
	mailer portssvc.Mailer
	ttl    time.Duration
}

// NewPasswordResetService creates the forgot-password flow. Tokens live for ttl.
func NewPasswordResetService(users portssvc.UserSvcFacade, resets portsrepo.PasswordResetRepository, mailer portssvc.Mailer, ttl time.Duration, now Clock) portssvc.PasswordResetSvc {
	return &passwordResetService{
		BaseService: BaseService{now: now},
		users:       users,
		resets:      resets,
		mailer:      mailer,
		ttl:         ttl,
	}
}

var _ portssvc.PasswordResetSvc = (*passwordResetService)(nil)

func (s *passwordResetService) SendPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return apperrors.NewAuthError(apperrors.AuthMissingFields)
	}
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewAuthError(apperrors.AuthUserNotFound)
		}
		return err
	}

	rawToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	now := s.Now().UTC()
	token := domain.PasswordResetToken{
		TokenHash: utils.HashToken(rawToken),
		UserID:    user.UserID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.resets.SaveResetToken(ctx, token); err != nil {
		s.LogError(ctx, err, "Failed to store reset token", slog.String("user_id", user.UserID))
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	if err := s.mailer.SendPasswordReset(ctx, user.Email, rawToken, token.ExpiresAt); err != nil {
		s.LogError(ctx, err, "Failed to send password reset email", slog.String("user_id", user.UserID))
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	s.LogInfo(ctx, "Password reset issued", slog.String("user_id", user.UserID))
	return nil
}

func (s *passwordResetService) ConfirmPasswordReset(ctx context.Context, req dto.PasswordResetConfirmRequest) error {
	if req.Token == "" || req.NewPassword == "" || req.ConfirmNewPassword == "" {
		return apperrors.NewAuthError(apperrors.AuthMissingFields)
	}
	if err := checkNewPassword(req.NewPassword, req.ConfirmNewPassword); err != nil {
		return err
	}

	hash := utils.HashToken(req.Token)
	token, err := s.resets.FindResetToken(ctx, hash)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewAuthError(apperrors.AuthInvalidResetToken)
		}
		return err
	}
	now := s.Now().UTC()
	if !token.IsUsable(now) {
		return apperrors.NewAuthError(apperrors.AuthInvalidResetToken)
	}

	// Consume first so two concurrent confirmations cannot both succeed.
	if err := s.resets.MarkResetTokenUsed(ctx, hash, now); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewAuthError(apperrors.AuthInvalidResetToken)
		}
		return err
	}
	if err := s.users.SetPassword(ctx, token.UserID, req.NewPassword, req.ConfirmNewPassword); err != nil {
		return err
	}
	// Existing refresh tokens stop working after a reset.
	if err := s.users.ClearRefreshToken(ctx, token.UserID); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token after reset", slog.String("user_id", token.UserID))
	}
	return nil
}
