package dto

import "github.com/SscSPs/parkmate_app/internal/core/domain"

// PreferenceResponse is a resolved preference. IsDefault is set when nothing
// valid is stored and the configured default was returned.
type PreferenceResponse struct {
	Key       string `json:"key" example:"theme"`
	Value     string `json:"value" example:"dark"`
	IsDefault bool   `json:"isDefault"`
}

// UpdatePreferenceRequest sets a preference value.
type UpdatePreferenceRequest struct {
	Value string `json:"value" binding:"required" example:"light"`
}

// ListPreferencesResponse lists every supported key with its resolved value.
type ListPreferencesResponse struct {
	Preferences []PreferenceResponse `json:"preferences"`
}

// ToPreferenceResponse converts a resolved preference.
func ToPreferenceResponse(p domain.ResolvedPreference) PreferenceResponse {
	return PreferenceResponse{
		Key:       string(p.Key),
		Value:     p.Value,
		IsDefault: p.IsDefault,
	}
}
