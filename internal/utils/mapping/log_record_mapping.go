package mapping

import (
	"time"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
	"github.com/SscSPs/parkmate_app/internal/models"
)

// ToModelLogRecord converts a domain LogRecord to its stored shape.
func ToModelLogRecord(d domain.LogRecord) models.LogRecord {
	return models.LogRecord{
		RecordID:        d.RecordID,
		EventType:       d.EventType.WireCode(),
		Pin:             d.Pin,
		Timestamp:       d.Timestamp.UTC(),
		DurationMinutes: d.DurationMinutes,
		Amount:          d.Amount,
	}
}

// ToDomainLogRecord converts a stored document and validates it. Callers skip
// records for which an error is returned.
func ToDomainLogRecord(m models.LogRecord) (domain.LogRecord, error) {
	eventType, err := domain.EventTypeFromWire(m.EventType)
	if err != nil {
		return domain.LogRecord{}, err
	}
	d := domain.LogRecord{
		RecordID:        m.RecordID,
		EventType:       eventType,
		Pin:             m.Pin,
		Timestamp:       m.Timestamp.UTC().Truncate(time.Millisecond),
		DurationMinutes: m.DurationMinutes,
		Amount:          m.Amount,
	}
	if err := d.ValidateStored(); err != nil {
		return domain.LogRecord{}, err
	}
	return d, nil
}
