// Package repositories holds helpers shared by the storage adapters.
package repositories

import (
	"context"
	"log/slog"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
	"github.com/SscSPs/parkmate_app/internal/middleware"
	"github.com/SscSPs/parkmate_app/internal/models"
	"github.com/SscSPs/parkmate_app/internal/utils/mapping"
)

// DecodeLogRecords converts stored rows to domain records in the given order.
// Rows that fail validation are logged and skipped.
func DecodeLogRecords(ctx context.Context, rows []models.LogRecord) []domain.LogRecord {
	out := make([]domain.LogRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := mapping.ToDomainLogRecord(row)
		if err != nil {
			SkipMalformed(ctx, row.RecordID, err)
			continue
		}
		out = append(out, rec)
	}
	return out
}

// SkipMalformed logs a stored record that cannot be read.
func SkipMalformed(ctx context.Context, recordID string, err error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("Skipping malformed log record",
		slog.String("record_id", recordID),
		slog.String("error", err.Error()))
}
