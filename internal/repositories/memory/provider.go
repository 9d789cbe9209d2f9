package memory

import (
	portsrepo "github.com/SscSPs/parkmate_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires fresh in-memory stores.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LogStore:       NewLogStore(),
		UserRepo:       NewUserRepository(),
		PreferenceRepo: NewPreferenceRepository(),
		ResetRepo:      NewPasswordResetRepository(),
		APITokenRepo:   NewAPITokenRepository(),
	}
}
