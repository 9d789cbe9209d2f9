package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	"github.com/SscSPs/parkmate_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parkmate_app/internal/core/ports/repositories"
)

type prefKey struct {
	userID string
	key    domain.PreferenceKey
}

// PreferenceRepository is an in-memory PreferenceRepository.
type PreferenceRepository struct {
	mu    sync.RWMutex
	prefs map[prefKey]domain.Preference
}

// NewPreferenceRepository returns an empty PreferenceRepository.
func NewPreferenceRepository() *PreferenceRepository {
	return &PreferenceRepository{prefs: make(map[prefKey]domain.Preference)}
}

var _ portsrepo.PreferenceRepository = (*PreferenceRepository)(nil)

func (r *PreferenceRepository) GetPreference(_ context.Context, userID string, key domain.PreferenceKey) (*domain.Preference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.prefs[prefKey{userID, key}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (r *PreferenceRepository) ListPreferences(_ context.Context, userID string) ([]domain.Preference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Preference
	for k, p := range r.prefs {
		if k.userID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// SetPreference stores the value as given; unknown values are resolved by the service.
func (r *PreferenceRepository) SetPreference(_ context.Context, pref domain.Preference) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs[prefKey{pref.UserID, pref.Key}] = pref
	return nil
}
