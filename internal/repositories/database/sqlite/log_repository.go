// Package sqlite stores the parking log in a single-file SQLite database,
// used by gate terminals that run without a network database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parkmate_app/internal/core/ports/repositories"
	"github.com/SscSPs/parkmate_app/internal/models"
	"github.com/SscSPs/parkmate_app/internal/repositories"
	"github.com/SscSPs/parkmate_app/internal/utils/id"
	"github.com/SscSPs/parkmate_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const schema = `
CREATE TABLE IF NOT EXISTS parking_logs (
	record_id        TEXT PRIMARY KEY,
	event_type       TEXT NOT NULL,
	pin              TEXT NOT NULL,
	ts_ms            INTEGER NOT NULL,
	duration_minutes INTEGER,
	amount           TEXT
);`

// LogRepository implements the log store over database/sql.
type LogRepository struct {
	db *sql.DB
}

// NewLogRepository creates the table if needed and returns the store.
func NewLogRepository(ctx context.Context, db *sql.DB) (*LogRepository, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("sqlite: create parking_logs: %w", err)
	}
	return &LogRepository{db: db}, nil
}

var _ portsrepo.LogStore = (*LogRepository)(nil)

func (r *LogRepository) Append(ctx context.Context, rec domain.LogRecord) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	rec.RecordID = id.New()
	m := mapping.ToModelLogRecord(rec)

	var amount sql.NullString
	if m.Amount != nil {
		amount = sql.NullString{String: m.Amount.String(), Valid: true}
	}
	var duration sql.NullInt64
	if m.DurationMinutes != nil {
		duration = sql.NullInt64{Int64: *m.DurationMinutes, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO parking_logs (record_id, event_type, pin, ts_ms, duration_minutes, amount) VALUES (?, ?, ?, ?, ?, ?)`,
		m.RecordID, m.EventType, m.Pin, m.Timestamp.UnixMilli(), duration, amount,
	)
	if err != nil {
		return "", fmt.Errorf("sqlite: insert log record: %w", err)
	}
	return rec.RecordID, nil
}

func (r *LogRepository) ReadAll(ctx context.Context) ([]domain.LogRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT record_id, event_type, pin, ts_ms, duration_minutes, amount FROM parking_logs ORDER BY record_id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query log records: %w", err)
	}
	defer rows.Close()

	var stored []models.LogRecord
	for rows.Next() {
		var (
			m        models.LogRecord
			tsMillis int64
			duration sql.NullInt64
			amount   sql.NullString
		)
		if err := rows.Scan(&m.RecordID, &m.EventType, &m.Pin, &tsMillis, &duration, &amount); err != nil {
			return nil, fmt.Errorf("sqlite: scan log record: %w", err)
		}
		m.Timestamp = time.UnixMilli(tsMillis).UTC()
		if duration.Valid {
			d := duration.Int64
			m.DurationMinutes = &d
		}
		if amount.Valid {
			a, err := decimal.NewFromString(amount.String)
			if err != nil {
				repositories.SkipMalformed(ctx, m.RecordID, err)
				continue
			}
			m.Amount = &a
		}
		stored = append(stored, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate log records: %w", err)
	}
	return repositories.DecodeLogRecords(ctx, stored), nil
}

func (r *LogRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM parking_logs`); err != nil {
		return fmt.Errorf("sqlite: delete log records: %w", err)
	}
	return nil
}
