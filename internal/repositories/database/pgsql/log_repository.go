package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parkmate_app/internal/core/ports/repositories"
	"github.com/SscSPs/parkmate_app/internal/models"
	"github.com/SscSPs/parkmate_app/internal/repositories"
	"github.com/SscSPs/parkmate_app/internal/utils/id"
	"github.com/SscSPs/parkmate_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	insertLogRecordQuery = `
		INSERT INTO parking_logs (record_id, event_type, pin, ts, duration_minutes, amount)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	// record_id is a ULID, so ordering by it is insertion order.
	selectLogRecordsQuery = `
		SELECT record_id, event_type, pin, ts, duration_minutes, amount
		FROM parking_logs
		ORDER BY record_id
	`

	deleteLogRecordsQuery = `DELETE FROM parking_logs`
)

// PgxLogRepository stores the parking log in the parking_logs table.
type PgxLogRepository struct {
	BaseRepository
}

// NewLogRepository creates a log store over pool.
func NewLogRepository(pool *pgxpool.Pool) *PgxLogRepository {
	return &PgxLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LogStore = (*PgxLogRepository)(nil)

func (r *PgxLogRepository) Append(ctx context.Context, rec domain.LogRecord) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	rec.RecordID = id.New()
	m := mapping.ToModelLogRecord(rec)

	_, err := r.Pool.Exec(ctx, insertLogRecordQuery,
		m.RecordID,
		m.EventType,
		m.Pin,
		m.Timestamp,
		m.DurationMinutes,
		m.Amount,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert log record: %w", err)
	}
	return rec.RecordID, nil
}

func (r *PgxLogRepository) ReadAll(ctx context.Context) ([]domain.LogRecord, error) {
	rows, err := r.Pool.Query(ctx, selectLogRecordsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query log records: %w", err)
	}
	defer rows.Close()

	var stored []models.LogRecord
	for rows.Next() {
		m, err := scanLogRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log record row: %w", err)
		}
		stored = append(stored, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating log record rows: %w", err)
	}

	return repositories.DecodeLogRecords(ctx, stored), nil
}

// scanLogRecord reads one parking_logs row. A NULL amount stays nil.
func scanLogRecord(row pgx.Row) (models.LogRecord, error) {
	var (
		m      models.LogRecord
		amount decimal.NullDecimal
	)
	if err := row.Scan(&m.RecordID, &m.EventType, &m.Pin, &m.Timestamp, &m.DurationMinutes, &amount); err != nil {
		return models.LogRecord{}, err
	}
	if amount.Valid {
		m.Amount = &amount.Decimal
	}
	return m, nil
}

func (r *PgxLogRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.Pool.Exec(ctx, deleteLogRecordsQuery); err != nil {
		return fmt.Errorf("failed to delete log records: %w", err)
	}
	return nil
}
