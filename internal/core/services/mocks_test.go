package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock LogStore ---
type MockLogStore struct {
	mock.Mock
}

func (m *MockLogStore) Append(ctx context.Context, rec domain.LogRecord) (string, error) {
	args := m.Called(ctx, rec)
	return args.String(0), args.Error(1)
}

func (m *MockLogStore) ReadAll(ctx context.Context) ([]domain.LogRecord, error) {
	args := m.Called(ctx)
	var recs []domain.LogRecord
	if args.Get(0) != nil {
		recs = args.Get(0).([]domain.LogRecord)
	}
	return recs, args.Error(1)
}

func (m *MockLogStore) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// fixedPins returns the given PINs in order, then repeats the last one.
type fixedPins struct {
	mu   sync.Mutex
	pins []string
	err  error
}

func (f *fixedPins) Generate() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	pin := f.pins[0]
	if len(f.pins) > 1 {
		f.pins = f.pins[1:]
	}
	return pin, nil
}

// manualClock is a settable time source.
type manualClock struct {
	mu sync.Mutex
	t  time.Time
}

func newManualClock(t time.Time) *manualClock { return &manualClock{t: t} }

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *manualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
