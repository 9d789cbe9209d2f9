package pgsql

import (
	portsrepo "github.com/SscSPs/parkmate_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository onto one pool. The log store
// may be replaced by the caller when LOG_STORE_DRIVER selects another backend.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LogStore:       NewLogRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
		PreferenceRepo: newPgxPreferenceRepository(dbPool),
		ResetRepo:      newPgxPasswordResetRepository(dbPool),
		APITokenRepo:   newPgxAPITokenRepository(dbPool),
	}
}
