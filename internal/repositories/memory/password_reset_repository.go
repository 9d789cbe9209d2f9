package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	"github.com/SscSPs/parkmate_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parkmate_app/internal/core/ports/repositories"
)

// PasswordResetRepository is an in-memory PasswordResetRepository.
type PasswordResetRepository struct {
	mu     sync.Mutex
	tokens map[string]domain.PasswordResetToken
}

// NewPasswordResetRepository returns an empty PasswordResetRepository.
func NewPasswordResetRepository() *PasswordResetRepository {
	return &PasswordResetRepository{tokens: make(map[string]domain.PasswordResetToken)}
}

var _ portsrepo.PasswordResetRepository = (*PasswordResetRepository)(nil)

func (r *PasswordResetRepository) SaveResetToken(_ context.Context, token domain.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token.TokenHash]; ok {
		return apperrors.ErrDuplicate
	}
	// Only the latest link of a user stays usable.
	for hash, t := range r.tokens {
		if t.UserID == token.UserID && t.UsedAt == nil {
			usedAt := token.CreatedAt
			t.UsedAt = &usedAt
			r.tokens[hash] = t
		}
	}
	r.tokens[token.TokenHash] = token
	return nil
}

func (r *PasswordResetRepository) FindResetToken(_ context.Context, tokenHash string) (*domain.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[tokenHash]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (r *PasswordResetRepository) MarkResetTokenUsed(_ context.Context, tokenHash string, usedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[tokenHash]
	if !ok || t.UsedAt != nil {
		return fmt.Errorf("reset token: %w", apperrors.ErrNotFound)
	}
	t.UsedAt = &usedAt
	r.tokens[tokenHash] = t
	return nil
}
