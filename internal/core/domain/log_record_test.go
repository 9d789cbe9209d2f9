package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	"github.com/SscSPs/parkmate_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestLogRecord_Validate(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		record  domain.LogRecord
		wantErr bool
	}{
		{
			name:   "valid entry",
			record: domain.NewEntryRecord("4821", now),
		},
		{
			name:   "valid exit",
			record: domain.NewExitRecord("4821", now, 8, decimal.NewFromInt(80)),
		},
		{
			name:    "pin too short",
			record:  domain.NewEntryRecord("482", now),
			wantErr: true,
		},
		{
			name:    "pin with letters",
			record:  domain.NewEntryRecord("48a1", now),
			wantErr: true,
		},
		{
			name:    "missing timestamp",
			record:  domain.LogRecord{EventType: domain.EventEntry, Pin: "1234"},
			wantErr: true,
		},
		{
			name: "entry carrying amount",
			record: domain.LogRecord{
				EventType: domain.EventEntry,
				Pin:       "1234",
				Timestamp: now,
				Amount:    decimalPtr(decimal.NewFromInt(10)),
			},
			wantErr: true,
		},
		{
			name:    "exit without duration",
			record:  domain.LogRecord{EventType: domain.EventExit, Pin: "1234", Timestamp: now, Amount: decimalPtr(decimal.NewFromInt(10))},
			wantErr: true,
		},
		{
			name: "exit with zero duration",
			record: domain.LogRecord{
				EventType:       domain.EventExit,
				Pin:             "1234",
				Timestamp:       now,
				DurationMinutes: int64Ptr(0),
				Amount:          decimalPtr(decimal.Zero),
			},
			wantErr: true,
		},
		{
			name:    "unknown type",
			record:  domain.LogRecord{EventType: "PARKED", Pin: "1234", Timestamp: now},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLogRecord_ValidateStoredAcceptsZeroDuration(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	legacy := domain.LogRecord{
		EventType:       domain.EventExit,
		Pin:             "1234",
		Timestamp:       now,
		DurationMinutes: int64Ptr(0),
		Amount:          decimalPtr(decimal.Zero),
	}

	assert.NoError(t, legacy.ValidateStored())
	assert.ErrorIs(t, legacy.Validate(), apperrors.ErrValidation)

	legacy.DurationMinutes = int64Ptr(-1)
	assert.ErrorIs(t, legacy.ValidateStored(), apperrors.ErrValidation)
}

func TestEventTypeWireCodes(t *testing.T) {
	assert.Equal(t, "GIRIS", domain.EventEntry.WireCode())
	assert.Equal(t, "CIKIS", domain.EventExit.WireCode())

	for code, want := range map[string]domain.EventType{
		"GIRIS": domain.EventEntry,
		"CIKIS": domain.EventExit,
		"ENTRY": domain.EventEntry,
		"EXIT":  domain.EventExit,
	} {
		got, err := domain.EventTypeFromWire(code)
		assert.NoError(t, err, code)
		assert.Equal(t, want, got, code)
	}

	_, err := domain.EventTypeFromWire("giris")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNewRecords_TruncateToMilliseconds(t *testing.T) {
	at := time.Date(2025, 6, 1, 10, 0, 0, 123456789, time.FixedZone("TRT", 3*3600))
	rec := domain.NewEntryRecord("1000", at)

	assert.Equal(t, time.UTC, rec.Timestamp.Location())
	assert.Equal(t, 123000000, rec.Timestamp.Nanosecond())
	assert.True(t, rec.IsEntry())
	assert.False(t, rec.HasAmount())
}

func TestBillableMinutes(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    int64
	}{
		{0, 1},
		{-3 * time.Second, 1},
		{time.Millisecond, 1},
		{time.Minute, 1},
		{time.Minute + time.Millisecond, 2},
		{7*time.Minute + 30*time.Second, 8},
		{5 * time.Minute, 5},
		{5*time.Minute + 400*time.Microsecond, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.BillableMinutes(tt.elapsed), tt.elapsed.String())
	}
}

func TestTariff_Price(t *testing.T) {
	tariff := domain.DefaultTariff()

	minutes, amount := tariff.Price(7*time.Minute + 30*time.Second)

	assert.Equal(t, int64(8), minutes)
	assert.True(t, decimal.NewFromInt(80).Equal(amount))
	assert.Equal(t, "TL", tariff.Currency)
}

func TestPreferenceKeys(t *testing.T) {
	k, err := domain.ParsePreferenceKey("theme")
	assert.NoError(t, err)
	assert.True(t, k.Accepts("dark"))
	assert.False(t, k.Accepts("blue"))

	_, err = domain.ParsePreferenceKey("font")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
