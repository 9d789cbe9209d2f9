package services

import (
	"context"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
)

// PreferenceSvc reads and writes per-user settings with defaults applied.
type PreferenceSvc interface {
	GetPreference(ctx context.Context, userID string, key string) (*domain.ResolvedPreference, error)
	ListPreferences(ctx context.Context, userID string) ([]domain.ResolvedPreference, error)
	SetPreference(ctx context.Context, userID string, key string, value string) (*domain.ResolvedPreference, error)
}
