package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	"github.com/SscSPs/parkmate_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parkmate_app/internal/core/ports/repositories"
)

// UserRepository is an in-memory UserRepositoryFacade.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewUserRepository returns an empty UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func (r *UserRepository) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[userID]
	if !ok || u.DeletedAt != nil {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.DeletedAt == nil && strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *UserRepository) FindUserByProviderDetails(_ context.Context, authProvider string, providerUserID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.DeletedAt == nil && string(u.AuthProvider) == authProvider &&
			u.ProviderUserID != nil && *u.ProviderUserID == providerUserID {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *UserRepository) SaveUser(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.UserID != user.UserID && strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("email %s: %w", user.Email, apperrors.ErrDuplicate)
		}
	}
	r.users[user.UserID] = user
	return nil
}

func (r *UserRepository) UpdateUser(_ context.Context, user domain.User) error {
	return r.update(user.UserID, func(u *domain.User) {
		u.Name = user.Name
		u.IsVerified = user.IsVerified
		u.ProviderUserID = user.ProviderUserID
		u.LastUpdatedAt = user.LastUpdatedAt
		u.LastUpdatedBy = user.LastUpdatedBy
	})
}

func (r *UserRepository) UpdatePasswordHash(_ context.Context, userID string, passwordHash string, updatedAt time.Time) error {
	return r.update(userID, func(u *domain.User) {
		u.PasswordHash = &passwordHash
		u.LastUpdatedAt = updatedAt
		u.LastUpdatedBy = userID
	})
}

func (r *UserRepository) UpdateRefreshToken(_ context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return r.update(userID, func(u *domain.User) {
		u.RefreshTokenHash = refreshTokenHash
		u.RefreshTokenExpiryTime = &refreshTokenExpiryTime
	})
}

func (r *UserRepository) ClearRefreshToken(_ context.Context, userID string) error {
	return r.update(userID, func(u *domain.User) {
		u.RefreshTokenHash = ""
		u.RefreshTokenExpiryTime = nil
	})
}

func (r *UserRepository) update(userID string, fn func(u *domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok || u.DeletedAt != nil {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	fn(&u)
	r.users[userID] = u
	return nil
}
