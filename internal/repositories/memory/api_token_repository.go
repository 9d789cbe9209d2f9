package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	"github.com/SscSPs/parkmate_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parkmate_app/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// APITokenRepository is an in-memory APITokenRepository. Deletes are soft.
type APITokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]domain.APIToken
	now    func() time.Time
}

// NewAPITokenRepository returns an empty APITokenRepository.
func NewAPITokenRepository() *APITokenRepository {
	return &APITokenRepository{tokens: make(map[string]domain.APIToken), now: time.Now}
}

var _ portsrepo.APITokenRepository = (*APITokenRepository)(nil)

func (r *APITokenRepository) Create(_ context.Context, token *domain.APIToken) error {
	if token == nil {
		return errors.New("token cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.TokenHash == token.TokenHash {
			return apperrors.ErrDuplicate
		}
	}
	now := r.now().UTC()
	token.ID = uuid.NewString()
	token.CreatedAt = now
	token.UpdatedAt = now
	r.tokens[token.ID] = *token
	return nil
}

func (r *APITokenRepository) FindByID(_ context.Context, id string) (*domain.APIToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tokens[id]
	if !ok || t.DeletedAt != nil {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (r *APITokenRepository) FindByUserID(_ context.Context, userID string) ([]domain.APIToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.APIToken
	for _, t := range r.tokens {
		if t.UserID == userID && t.DeletedAt == nil {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *APITokenRepository) FindByHash(_ context.Context, tokenHash string) (*domain.APIToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash && t.DeletedAt == nil {
			return &t, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *APITokenRepository) UpdateLastUsed(_ context.Context, id string, usedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok || t.DeletedAt != nil {
		return fmt.Errorf("api token %s: %w", id, apperrors.ErrNotFound)
	}
	t.MarkUsed(usedAt)
	t.UpdatedAt = usedAt
	r.tokens[id] = t
	return nil
}

func (r *APITokenRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok || t.DeletedAt != nil {
		return fmt.Errorf("api token %s: %w", id, apperrors.ErrNotFound)
	}
	now := r.now().UTC()
	t.DeletedAt = &now
	r.tokens[id] = t
	return nil
}

func (r *APITokenRepository) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now().UTC()
	for id, t := range r.tokens {
		if t.UserID == userID && t.DeletedAt == nil {
			t.DeletedAt = &now
			r.tokens[id] = t
		}
	}
	return nil
}
