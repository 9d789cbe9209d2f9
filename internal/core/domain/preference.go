package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
)

// PreferenceKey names a per-user setting.
type PreferenceKey string

const (
	PrefTheme    PreferenceKey = "theme"
	PrefLanguage PreferenceKey = "language"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	LanguageEnglish = "en"
	LanguageTurkish = "tr"
)

var allowedPreferenceValues = map[PreferenceKey][]string{
	PrefTheme:    {ThemeLight, ThemeDark},
	PrefLanguage: {LanguageEnglish, LanguageTurkish},
}

// PreferenceKeys lists the supported keys in display order.
func PreferenceKeys() []PreferenceKey {
	return []PreferenceKey{PrefTheme, PrefLanguage}
}

// Preference is a stored key/value pair for one user.
type Preference struct {
	UserID    string        `json:"-"`
	Key       PreferenceKey `json:"key"`
	Value     string        `json:"value"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// ParsePreferenceKey validates a key coming from the outside.
func ParsePreferenceKey(key string) (PreferenceKey, error) {
	k := PreferenceKey(key)
	if _, ok := allowedPreferenceValues[k]; !ok {
		return "", fmt.Errorf("unknown preference %q: %w", key, apperrors.ErrValidation)
	}
	return k, nil
}

// Accepts reports whether value is allowed for k.
func (k PreferenceKey) Accepts(value string) bool {
	for _, v := range allowedPreferenceValues[k] {
		if v == value {
			return true
		}
	}
	return false
}

// ResolvedPreference is the value a client should apply for a key.
type ResolvedPreference struct {
	Key       PreferenceKey
	Value     string
	IsDefault bool
}
