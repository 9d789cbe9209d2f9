package domain

import "time"

// SessionStatus is the display status of a parking session in the history view.
type SessionStatus string

const (
	StatusActive    SessionStatus = "ACTIVE"
	StatusCompleted SessionStatus = "COMPLETED"
)

// HistoryItem is a log record annotated with the entry/exit pairing used for display.
type HistoryItem struct {
	LogRecord
	EntryTime *time.Time    `json:"entryTime,omitempty"`
	ExitTime  *time.Time    `json:"exitTime,omitempty"`
	Status    SessionStatus `json:"status"`
}
