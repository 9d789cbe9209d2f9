package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EventType tags a LogRecord as the start or the end of a parking session.
type EventType string

const (
	EventEntry EventType = "ENTRY"
	EventExit  EventType = "EXIT"
)

// Stored documents keep the codes written by the first mobile release.
const (
	wireCodeEntry = "GIRIS"
	wireCodeExit  = "CIKIS"
)

// PinLength is the number of digits in a parking PIN.
const PinLength = 4

// WireCode returns the code persisted in the log store for t.
func (t EventType) WireCode() string {
	switch t {
	case EventEntry:
		return wireCodeEntry
	case EventExit:
		return wireCodeExit
	default:
		return string(t)
	}
}

// EventTypeFromWire parses a stored event code. Both the stored codes and the
// API names are accepted.
func EventTypeFromWire(code string) (EventType, error) {
	switch code {
	case wireCodeEntry, string(EventEntry):
		return EventEntry, nil
	case wireCodeExit, string(EventExit):
		return EventExit, nil
	default:
		return "", fmt.Errorf("unknown event type %q: %w", code, apperrors.ErrValidation)
	}
}

// LogRecord is one immutable fact about a parking session. ENTRY records carry
// only pin and timestamp; EXIT records also carry duration and amount.
type LogRecord struct {
	RecordID        string           `json:"recordID"`
	EventType       EventType        `json:"eventType"`
	Pin             string           `json:"pin"`
	Timestamp       time.Time        `json:"timestamp"`
	DurationMinutes *int64           `json:"durationMinutes,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
}

// NormalizeTimestamp converts t to the resolution stored in the log: UTC milliseconds.
func NormalizeTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// NewEntryRecord builds an ENTRY record. The record ID is assigned by the store.
func NewEntryRecord(pin string, at time.Time) LogRecord {
	return LogRecord{
		EventType: EventEntry,
		Pin:       pin,
		Timestamp: NormalizeTimestamp(at),
	}
}

// NewExitRecord builds an EXIT record.
func NewExitRecord(pin string, at time.Time, durationMinutes int64, amount decimal.Decimal) LogRecord {
	return LogRecord{
		EventType:       EventExit,
		Pin:             pin,
		Timestamp:       NormalizeTimestamp(at),
		DurationMinutes: &durationMinutes,
		Amount:          &amount,
	}
}

// Clone returns a copy of r that shares no memory with it.
func (r LogRecord) Clone() LogRecord {
	if r.DurationMinutes != nil {
		d := *r.DurationMinutes
		r.DurationMinutes = &d
	}
	if r.Amount != nil {
		a := *r.Amount
		r.Amount = &a
	}
	return r
}

func (r LogRecord) IsEntry() bool { return r.EventType == EventEntry }

func (r LogRecord) IsExit() bool { return r.EventType == EventExit }

// HasAmount reports whether the record belongs in the payments view.
func (r LogRecord) HasAmount() bool { return r.Amount != nil }

// Validate checks the variant-specific shape of a record about to be appended.
func (r LogRecord) Validate() error {
	return r.validate(1)
}

// ValidateStored checks a record read back from a store. Records written by the
// first mobile release carry a zero duration when entry and exit share a
// timestamp, so zero is accepted here.
func (r LogRecord) ValidateStored() error {
	return r.validate(0)
}

func (r LogRecord) validate(minDuration int64) error {
	if !IsValidPin(r.Pin) {
		return fmt.Errorf("pin %q must be %d digits: %w", r.Pin, PinLength, apperrors.ErrValidation)
	}
	if r.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required: %w", apperrors.ErrValidation)
	}
	switch r.EventType {
	case EventEntry:
		if r.DurationMinutes != nil || r.Amount != nil {
			return fmt.Errorf("entry record must not carry duration or amount: %w", apperrors.ErrValidation)
		}
	case EventExit:
		if r.DurationMinutes == nil || r.Amount == nil {
			return fmt.Errorf("exit record requires duration and amount: %w", apperrors.ErrValidation)
		}
		if *r.DurationMinutes < minDuration {
			return fmt.Errorf("exit duration must be at least %d minute(s): %w", minDuration, apperrors.ErrValidation)
		}
		if r.Amount.IsNegative() {
			return fmt.Errorf("exit amount must not be negative: %w", apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("unknown event type %q: %w", r.EventType, apperrors.ErrValidation)
	}
	return nil
}

// IsValidPin reports whether pin is exactly PinLength ASCII digits.
func IsValidPin(pin string) bool {
	if len(pin) != PinLength {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	return true
}

// ExitResult is what a driver sees after a successful exit.
type ExitResult struct {
	Pin             string          `json:"pin"`
	EntryRecordID   string          `json:"entryRecordID"`
	ExitRecordID    string          `json:"exitRecordID"`
	EntryTime       time.Time       `json:"entryTime"`
	ExitTime        time.Time       `json:"exitTime"`
	DurationMinutes int64           `json:"durationMinutes"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
}
