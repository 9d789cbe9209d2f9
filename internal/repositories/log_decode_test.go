package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/parkmate_app/internal/models"
	"github.com/SscSPs/parkmate_app/internal/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLogRecords_SkipsMalformed(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	rows := []models.LogRecord{
		{RecordID: "a", EventType: "GIRIS", Pin: "1234", Timestamp: now},
		{RecordID: "b", EventType: "PARKED", Pin: "1234", Timestamp: now},
		{RecordID: "c", EventType: "GIRIS", Pin: "12", Timestamp: now},
		{RecordID: "d", EventType: "CIKIS", Pin: "1234", Timestamp: now},
		{RecordID: "e", EventType: "GIRIS", Pin: "5678", Timestamp: now.Add(time.Minute)},
	}

	got := repositories.DecodeLogRecords(context.Background(), rows)

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].RecordID)
	assert.Equal(t, "e", got[1].RecordID)
}

func TestDecodeLogRecords_KeepsZeroDurationExit(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	zero := int64(0)
	price := decimal.Zero
	rows := []models.LogRecord{
		{RecordID: "a", EventType: "GIRIS", Pin: "1234", Timestamp: now},
		{RecordID: "b", EventType: "CIKIS", Pin: "1234", Timestamp: now, DurationMinutes: &zero, Amount: &price},
	}

	got := repositories.DecodeLogRecords(context.Background(), rows)

	require.Len(t, got, 2)
	assert.True(t, got[1].IsExit())
	assert.Equal(t, int64(0), *got[1].DurationMinutes)
}
