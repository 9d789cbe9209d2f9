package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	LogStore       LogStore
	UserRepo       UserRepositoryFacade
	PreferenceRepo PreferenceRepository
	ResetRepo      PasswordResetRepository
	APITokenRepo   APITokenRepository
}
