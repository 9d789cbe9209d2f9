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
	portsrepo "github.com/SscSPs/parkmate_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/parkmate_app/internal/core/ports/services"
	"github.com/SscSPs/parkmate_app/internal/dto"
	"github.com/SscSPs/parkmate_app/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MinPasswordLength is the shortest password accepted on sign-up and change.
const MinPasswordLength = 6

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	validate *validator.Validate
}

// NewUserService creates a user service over repo.
func NewUserService(repo portsrepo.UserRepositoryFacade, now Clock) portssvc.UserSvcFacade {
	return &userService{
		BaseService: BaseService{now: now},
		userRepo:    repo,
		validate:    validator.New(),
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email in service: %w", err)
	}
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return nil, apperrors.NewAuthError(apperrors.AuthMissingFields)
	}
	if err := s.checkEmail(email); err != nil {
		return nil, err
	}
	if err := checkNewPassword(req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, apperrors.NewAuthError(apperrors.AuthEmailAlreadyInUse)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing user")
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return nil, apperrors.NewAuthError(apperrors.AuthWeakPassword)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	now := s.Now().UTC()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Email:        email,
		Name:         name,
		PasswordHash: &hash,
		AuthProvider: domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAuthError(apperrors.AuthEmailAlreadyInUse)
		}
		s.LogError(ctx, err, "Failed to save user")
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", userID))
	return &user, nil
}

func (s *userService) CreateOAuthUser(ctx context.Context, name, email, authProvider, providerUserID string, emailVerified bool) (*domain.User, error) {
	if providerUserID == "" {
		return nil, fmt.Errorf("provider user ID is required: %w", apperrors.ErrValidation)
	}

	if existing, err := s.userRepo.FindUserByProviderDetails(ctx, authProvider, providerUserID); err == nil {
		return existing, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up provider user: %w", err)
	}

	email = normalizeEmail(email)
	now := s.Now().UTC()

	// Link the provider to an existing account with the same verified email.
	if emailVerified && email != "" {
		existing, err := s.userRepo.FindUserByEmail(ctx, email)
		if err == nil {
			existing.ProviderUserID = &providerUserID
			existing.IsVerified = true
			existing.LastUpdatedAt = now
			existing.LastUpdatedBy = existing.UserID
			if err := s.userRepo.UpdateUser(ctx, *existing); err != nil {
				return nil, fmt.Errorf("failed to link provider to user: %w", err)
			}
			s.LogInfo(ctx, "Linked external provider to user",
				slog.String("user_id", existing.UserID), slog.String("provider", authProvider))
			return existing, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check for existing user: %w", err)
		}
	}

	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	userID := uuid.NewString()
	user := domain.User{
		UserID:         userID,
		Email:          email,
		Name:           name,
		AuthProvider:   domain.AuthProvider(authProvider),
		ProviderUserID: &providerUserID,
		IsVerified:     emailVerified,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create oauth user: %w", err)
	}
	s.LogInfo(ctx, "User registered via external provider",
		slog.String("user_id", userID), slog.String("provider", authProvider))
	return &user, nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.NewAuthError(apperrors.AuthMissingFields)
	}
	if err := s.checkEmail(email); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAuthError(apperrors.AuthUserNotFound)
		}
		s.LogError(ctx, err, "Failed to load user for sign-in")
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user.PasswordHash == nil || !utils.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, apperrors.NewAuthError(apperrors.AuthWrongPassword)
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmNewPassword == "" {
		return apperrors.NewAuthError(apperrors.AuthMissingFields)
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user.PasswordHash == nil || !utils.CheckPasswordHash(req.CurrentPassword, *user.PasswordHash) {
		return apperrors.NewAuthError(apperrors.AuthWrongPassword)
	}
	return s.SetPassword(ctx, userID, req.NewPassword, req.ConfirmNewPassword)
}

func (s *userService) SetPassword(ctx context.Context, userID string, newPassword, confirmNewPassword string) error {
	if newPassword == "" || confirmNewPassword == "" {
		return apperrors.NewAuthError(apperrors.AuthMissingFields)
	}
	if err := checkNewPassword(newPassword, confirmNewPassword); err != nil {
		return err
	}
	hash, err := utils.HashPassword(newPassword)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return apperrors.NewAuthError(apperrors.AuthWeakPassword)
	}
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash, s.Now().UTC()); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	s.LogInfo(ctx, "Password changed", slog.String("user_id", userID))
	return nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime); err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	return nil
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

func (s *userService) checkEmail(email string) error {
	if err := s.validate.Var(email, "email"); err != nil {
		return apperrors.NewAuthError(apperrors.AuthInvalidEmail)
	}
	return nil
}

func checkNewPassword(password, confirm string) error {
	if len(password) < MinPasswordLength {
		return apperrors.NewAuthError(apperrors.AuthWeakPassword)
	}
	if password != confirm {
		return apperrors.NewAuthError(apperrors.AuthPasswordsMismatch)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
