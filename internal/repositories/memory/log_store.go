// Package memory holds goroutine-safe in-process stores used by tests, the
// CLI dry runs and LOG_STORE_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parkmate_app/internal/core/ports/repositories"
	"github.com/SscSPs/parkmate_app/internal/utils/id"
)

// LogStore keeps records in insertion order.
type LogStore struct {
	mu      sync.RWMutex
	records []domain.LogRecord
}

// NewLogStore returns an empty LogStore.
func NewLogStore() *LogStore {
	return &LogStore{}
}

var _ portsrepo.LogStore = (*LogStore)(nil)

func (s *LogStore) Append(ctx context.Context, rec domain.LogRecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := rec.Validate(); err != nil {
		return "", err
	}
	rec = rec.Clone()
	rec.RecordID = id.New()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return rec.RecordID, nil
}

func (s *LogStore) ReadAll(ctx context.Context) ([]domain.LogRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.LogRecord, len(s.records))
	for i, rec := range s.records {
		out[i] = rec.Clone()
	}
	return out, nil
}

func (s *LogStore) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}
