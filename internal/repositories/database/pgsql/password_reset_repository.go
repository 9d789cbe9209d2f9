package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	"github.com/SscSPs/parkmate_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parkmate_app/internal/core/ports/repositories"
	"github.com/SscSPs/parkmate_app/internal/models"
	"github.com/SscSPs/parkmate_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPasswordResetRepository struct {
	BaseRepository
}

func newPgxPasswordResetRepository(db *pgxpool.Pool) portsrepo.PasswordResetRepository {
	return &PgxPasswordResetRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.PasswordResetRepository = (*PgxPasswordResetRepository)(nil)

// SaveResetToken stores token and consumes any earlier unused token of the
// same user, so only the latest link works.
func (r *PgxPasswordResetRepository) SaveResetToken(ctx context.Context, token domain.PasswordResetToken) (err error) {
	m := mapping.ToModelPasswordResetToken(token)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	_, err = tx.Exec(ctx, `
		UPDATE password_reset_tokens SET used_at = $2
		WHERE user_id = $1 AND used_at IS NULL;
	`, m.UserID, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to invalidate previous reset tokens: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO password_reset_tokens (token_hash, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4);
	`, m.TokenHash, m.UserID, m.ExpiresAt, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert reset token: %w", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxPasswordResetRepository) FindResetToken(ctx context.Context, tokenHash string) (*domain.PasswordResetToken, error) {
	var m models.PasswordResetToken
	err := r.Pool.QueryRow(ctx, `
		SELECT token_hash, user_id, expires_at, used_at, created_at
		FROM password_reset_tokens
		WHERE token_hash = $1;
	`, tokenHash).Scan(&m.TokenHash, &m.UserID, &m.ExpiresAt, &m.UsedAt, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reset token: %w", err)
	}
	t := mapping.ToDomainPasswordResetToken(m)
	return &t, nil
}

func (r *PgxPasswordResetRepository) MarkResetTokenUsed(ctx context.Context, tokenHash string, usedAt time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE password_reset_tokens SET used_at = $2
		WHERE token_hash = $1 AND used_at IS NULL;
	`, tokenHash, usedAt)
	if err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("reset token not found or already used: %w", apperrors.ErrNotFound)
	}
	return nil
}
