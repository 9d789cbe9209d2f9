package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	"github.com/SscSPs/parkmate_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parkmate_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/parkmate_app/internal/core/ports/services"
)

type preferenceService struct {
	BaseService
	repo     portsrepo.PreferenceRepository
	defaults map[domain.PreferenceKey]string
}

// NewPreferenceService creates the preference service. defaults supplies the
// value used when a key was never set or holds an unrecognised value.
func NewPreferenceService(repo portsrepo.PreferenceRepository, defaults map[domain.PreferenceKey]string, now Clock) portssvc.PreferenceSvc {
	d := map[domain.PreferenceKey]string{
		domain.PrefTheme:    domain.ThemeDark,
		domain.PrefLanguage: domain.LanguageEnglish,
	}
	for k, v := range defaults {
		if k.Accepts(v) {
			d[k] = v
		}
	}
	return &preferenceService{
		BaseService: BaseService{now: now},
		repo:        repo,
		defaults:    d,
	}
}

var _ portssvc.PreferenceSvc = (*preferenceService)(nil)

func (s *preferenceService) GetPreference(ctx context.Context, userID string, key string) (*domain.ResolvedPreference, error) {
	k, err := domain.ParsePreferenceKey(key)
	if err != nil {
		return nil, err
	}
	stored, err := s.repo.GetPreference(ctx, userID, k)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to read preference", slog.String("key", key))
		return nil, fmt.Errorf("failed to read preference: %w", err)
	}
	resolved := s.resolve(ctx, k, stored)
	return &resolved, nil
}

func (s *preferenceService) ListPreferences(ctx context.Context, userID string) ([]domain.ResolvedPreference, error) {
	stored, err := s.repo.ListPreferences(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list preferences")
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	byKey := make(map[domain.PreferenceKey]*domain.Preference, len(stored))
	for i := range stored {
		byKey[stored[i].Key] = &stored[i]
	}

	keys := domain.PreferenceKeys()
	out := make([]domain.ResolvedPreference, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.resolve(ctx, k, byKey[k]))
	}
	return out, nil
}

func (s *preferenceService) SetPreference(ctx context.Context, userID string, key string, value string) (*domain.ResolvedPreference, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	k, err := domain.ParsePreferenceKey(key)
	if err != nil {
		return nil, err
	}
	if !k.Accepts(value) {
		return nil, fmt.Errorf("value %q not allowed for %s: %w", value, key, apperrors.ErrValidation)
	}

	pref := domain.Preference{UserID: userID, Key: k, Value: value, UpdatedAt: s.Now().UTC()}
	if err := s.repo.SetPreference(ctx, pref); err != nil {
		s.LogError(ctx, err, "Failed to store preference", slog.String("key", key))
		return nil, fmt.Errorf("failed to store preference: %w", err)
	}
	return &domain.ResolvedPreference{Key: k, Value: value}, nil
}

// resolve applies the default when nothing usable is stored.
func (s *preferenceService) resolve(ctx context.Context, k domain.PreferenceKey, stored *domain.Preference) domain.ResolvedPreference {
	if stored != nil && k.Accepts(stored.Value) {
		return domain.ResolvedPreference{Key: k, Value: stored.Value}
	}
	if stored != nil {
		s.LogWarn(ctx, "Ignoring unrecognised stored preference", slog.String("key", string(k)), slog.String("value", stored.Value))
	}
	return domain.ResolvedPreference{Key: k, Value: s.defaults[k], IsDefault: true}
}
