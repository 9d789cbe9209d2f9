package repositories

import (
	"context"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
)

// LogReader reads the parking log.
type LogReader interface {
	// ReadAll returns every valid record in insertion order. Malformed
	// documents are skipped.
	ReadAll(ctx context.Context) ([]domain.LogRecord, error)
}

// LogWriter appends to and purges the parking log.
type LogWriter interface {
	// Append stores rec under a new time-sortable key and returns the key.
	// Records are never updated once appended.
	Append(ctx context.Context, rec domain.LogRecord) (string, error)

	// DeleteAll removes every record. Irreversible.
	DeleteAll(ctx context.Context) error
}

// LogStore is the append-only collection of parking log records.
type LogStore interface {
	LogReader
	LogWriter
}
