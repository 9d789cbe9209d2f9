package mapping

import (
	"github.com/SscSPs/parkmate_app/internal/core/domain"
	"github.com/SscSPs/parkmate_app/internal/models"
)

// ToModelPreference converts a domain Preference to a model Preference
func ToModelPreference(d domain.Preference) models.Preference {
	return models.Preference{
		UserID:    d.UserID,
		Key:       string(d.Key),
		Value:     d.Value,
		UpdatedAt: d.UpdatedAt,
	}
}

// ToDomainPreference converts a model Preference to a domain Preference
func ToDomainPreference(m models.Preference) domain.Preference {
	return domain.Preference{
		UserID:    m.UserID,
		Key:       domain.PreferenceKey(m.Key),
		Value:     m.Value,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToModelPasswordResetToken converts a domain reset token to a model.
func ToModelPasswordResetToken(d domain.PasswordResetToken) models.PasswordResetToken {
	return models.PasswordResetToken(d)
}

// ToDomainPasswordResetToken converts a model reset token to the domain type.
func ToDomainPasswordResetToken(m models.PasswordResetToken) domain.PasswordResetToken {
	return domain.PasswordResetToken(m)
}
