package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	"github.com/SscSPs/parkmate_app/internal/core/domain"
	"github.com/SscSPs/parkmate_app/internal/core/services"
	"github.com/SscSPs/parkmate_app/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceService_DefaultsAndOverrides(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPreferenceRepository()
	svc := services.NewPreferenceService(repo, map[domain.PreferenceKey]string{
		domain.PrefLanguage: domain.LanguageTurkish,
	}, nil)

	prefs, err := svc.ListPreferences(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []domain.ResolvedPreference{
		{Key: domain.PrefTheme, Value: domain.ThemeDark, IsDefault: true},
		{Key: domain.PrefLanguage, Value: domain.LanguageTurkish, IsDefault: true},
	}, prefs)

	set, err := svc.SetPreference(ctx, "user-1", "theme", "light")
	require.NoError(t, err)
	assert.Equal(t, "light", set.Value)

	got, err := svc.GetPreference(ctx, "user-1", "theme")
	require.NoError(t, err)
	assert.Equal(t, domain.ResolvedPreference{Key: domain.PrefTheme, Value: "light"}, *got)

	// Other users are unaffected.
	got, err = svc.GetPreference(ctx, "user-2", "theme")
	require.NoError(t, err)
	assert.True(t, got.IsDefault)
}

func TestPreferenceService_RejectsUnknownValues(t *testing.T) {
	ctx := context.Background()
	svc := services.NewPreferenceService(memory.NewPreferenceRepository(), nil, nil)

	_, err := svc.SetPreference(ctx, "user-1", "theme", "sepia")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.GetPreference(ctx, "user-1", "font-size")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.SetPreference(ctx, "", "theme", "light")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestPreferenceService_StoredGarbageFallsBack(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPreferenceRepository()
	require.NoError(t, repo.SetPreference(ctx, domain.Preference{
		UserID: "user-1", Key: domain.PrefLanguage, Value: "klingon", UpdatedAt: time.Now(),
	}))
	svc := services.NewPreferenceService(repo, nil, nil)

	got, err := svc.GetPreference(ctx, "user-1", "language")

	require.NoError(t, err)
	assert.Equal(t, domain.LanguageEnglish, got.Value)
	assert.True(t, got.IsDefault)
}

func TestPreferenceService_InvalidConfiguredDefaultIgnored(t *testing.T) {
	svc := services.NewPreferenceService(memory.NewPreferenceRepository(), map[domain.PreferenceKey]string{
		domain.PrefTheme: "neon",
	}, nil)

	got, err := svc.GetPreference(context.Background(), "user-1", "theme")

	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, got.Value)
}
