package mongo

import (
	"testing"
	"time"

	"github.com/SscSPs/parkmate_app/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestLogRecordDoc_AmountStoredAsString(t *testing.T) {
	amount := decimal.RequireFromString("80.00")
	duration := int64(8)
	m := models.LogRecord{
		RecordID:        "01J0Z3CDW1S6K0V5MFX9Q2T7YB",
		EventType:       "CIKIS",
		Pin:             "4821",
		Timestamp:       time.Date(2025, 6, 1, 10, 8, 0, 0, time.UTC),
		DurationMinutes: &duration,
		Amount:          &amount,
	}

	raw, err := bson.Marshal(toDoc(m))
	require.NoError(t, err)

	var generic bson.M
	require.NoError(t, bson.Unmarshal(raw, &generic))
	assert.Equal(t, "80", generic["amount"])
	assert.Equal(t, "CIKIS", generic["type"])
	assert.Equal(t, m.RecordID, generic["_id"])

	var doc logRecordDoc
	require.NoError(t, bson.Unmarshal(raw, &doc))
	back, err := fromDoc(doc)
	require.NoError(t, err)
	assert.True(t, amount.Equal(*back.Amount))
	assert.Equal(t, duration, *back.DurationMinutes)
}

func TestLogRecordDoc_EntryOmitsOptionalFields(t *testing.T) {
	raw, err := bson.Marshal(toDoc(models.LogRecord{RecordID: "x", EventType: "GIRIS", Pin: "1234", Timestamp: time.Now()}))
	require.NoError(t, err)

	var generic bson.M
	require.NoError(t, bson.Unmarshal(raw, &generic))
	assert.NotContains(t, generic, "amount")
	assert.NotContains(t, generic, "duration")
}

func TestFromDoc_RejectsBadAmount(t *testing.T) {
	bad := "eighty"
	_, err := fromDoc(logRecordDoc{ID: "x", Type: "CIKIS", Pin: "1234", Amount: &bad})
	assert.Error(t, err)
}
