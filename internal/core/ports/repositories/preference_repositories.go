package repositories

import (
	"context"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
)

// PreferenceRepository stores per-user key/value settings.
type PreferenceRepository interface {
	// GetPreference returns apperrors.ErrNotFound when the key was never set.
	GetPreference(ctx context.Context, userID string, key domain.PreferenceKey) (*domain.Preference, error)

	// ListPreferences returns every stored preference of the user.
	ListPreferences(ctx context.Context, userID string) ([]domain.Preference, error)

	// SetPreference inserts or replaces the value for the key.
	SetPreference(ctx context.Context, pref domain.Preference) error
}
