package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LogRecord is the persisted shape of a parking log document. The event
// type is stored as its wire code (GIRIS / CIKIS). Optional fields are
// pointers because stored documents are schemaless.
type LogRecord struct {
	RecordID        string           `db:"record_id" bson:"_id" json:"recordID"`
	EventType       string           `db:"event_type" bson:"type" json:"type"`
	Pin             string           `db:"pin" bson:"pin" json:"pin"`
	Timestamp       time.Time        `db:"ts" bson:"timestamp" json:"timestamp"`
	DurationMinutes *int64           `db:"duration_minutes" bson:"duration,omitempty" json:"duration,omitempty"`
	Amount          *decimal.Decimal `db:"amount" bson:"-" json:"amount,omitempty"`
}
