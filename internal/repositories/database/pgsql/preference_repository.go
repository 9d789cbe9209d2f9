package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	"github.com/SscSPs/parkmate_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parkmate_app/internal/core/ports/repositories"
	"github.com/SscSPs/parkmate_app/internal/models"
	"github.com/SscSPs/parkmate_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPreferenceRepository struct {
	db *pgxpool.Pool
}

func newPgxPreferenceRepository(db *pgxpool.Pool) portsrepo.PreferenceRepository {
	return &PgxPreferenceRepository{db: db}
}

var _ portsrepo.PreferenceRepository = (*PgxPreferenceRepository)(nil)

func (r *PgxPreferenceRepository) GetPreference(ctx context.Context, userID string, key domain.PreferenceKey) (*domain.Preference, error) {
	query := `
		SELECT user_id, pref_key, pref_value, updated_at
		FROM user_preferences
		WHERE user_id = $1 AND pref_key = $2;
	`
	var m models.Preference
	err := r.db.QueryRow(ctx, query, userID, string(key)).Scan(&m.UserID, &m.Key, &m.Value, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get preference %s: %w", key, err)
	}
	pref := mapping.ToDomainPreference(m)
	return &pref, nil
}

func (r *PgxPreferenceRepository) ListPreferences(ctx context.Context, userID string) ([]domain.Preference, error) {
	query := `
		SELECT user_id, pref_key, pref_value, updated_at
		FROM user_preferences
		WHERE user_id = $1
		ORDER BY pref_key;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer rows.Close()

	prefs := []domain.Preference{}
	for rows.Next() {
		var m models.Preference
		if err := rows.Scan(&m.UserID, &m.Key, &m.Value, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan preference row: %w", err)
		}
		prefs = append(prefs, mapping.ToDomainPreference(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating preference rows: %w", rows.Err())
	}
	return prefs, nil
}

func (r *PgxPreferenceRepository) SetPreference(ctx context.Context, pref domain.Preference) error {
	m := mapping.ToModelPreference(pref)
	query := `
		INSERT INTO user_preferences (user_id, pref_key, pref_value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, pref_key) DO UPDATE SET
			pref_value = EXCLUDED.pref_value,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.db.Exec(ctx, query, m.UserID, m.Key, m.Value, m.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}
	return nil
}
