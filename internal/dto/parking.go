package dto

import (
	"time"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryResponse is returned after a vehicle enters.
type EntryResponse struct {
	Pin       string    `json:"pin" example:"4821"`
	RecordID  string    `json:"recordID" example:"01J0Z3CDW1S6K0V5MFX9Q2T7YB"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message,omitempty" example:"Please use this code when exiting."`
}

// ExitRequest resolves an open entry.
type ExitRequest struct {
	Pin string `json:"pin" binding:"required,number,len=4" example:"4821"`
}

// ExitResponse is returned after a successful exit.
type ExitResponse struct {
	Pin             string          `json:"pin"`
	EntryRecordID   string          `json:"entryRecordID"`
	ExitRecordID    string          `json:"exitRecordID"`
	EntryTime       time.Time       `json:"entryTime"`
	ExitTime        time.Time       `json:"exitTime"`
	DurationMinutes int64           `json:"durationMinutes" example:"8"`
	Amount          decimal.Decimal `json:"amount" swaggertype:"string" example:"80"`
	Currency        string          `json:"currency" example:"TL"`
}

// ListLogsParams pages through the history and payments views.
type ListLogsParams struct {
	Limit     int    `form:"limit,default=50" binding:"min=0,max=500"`
	NextToken string `form:"nextToken"`
}

// DeleteLogsParams guards the irreversible purge.
type DeleteLogsParams struct {
	Confirm bool `form:"confirm"`
}

// HistoryItemResponse is one row of the history view.
type HistoryItemResponse struct {
	RecordID        string           `json:"recordID"`
	EventType       string           `json:"eventType" example:"EXIT"`
	Pin             string           `json:"pin"`
	Timestamp       time.Time        `json:"timestamp"`
	EntryTime       *time.Time       `json:"entryTime,omitempty"`
	ExitTime        *time.Time       `json:"exitTime,omitempty"`
	DurationMinutes *int64           `json:"durationMinutes,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty" swaggertype:"string"`
	Status          string           `json:"status" example:"COMPLETED"`
	StatusLabel     string           `json:"statusLabel,omitempty" example:"Completed"`
}

// ListHistoryResponse wraps a page of history items.
type ListHistoryResponse struct {
	Items     []HistoryItemResponse `json:"items"`
	Currency  string                `json:"currency"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// PaymentResponse is one row of the payments view.
type PaymentResponse struct {
	RecordID        string          `json:"recordID"`
	Pin             string          `json:"pin"`
	Timestamp       time.Time       `json:"timestamp"`
	DurationMinutes int64           `json:"durationMinutes"`
	Amount          decimal.Decimal `json:"amount" swaggertype:"string"`
}

// ListPaymentsResponse wraps a page of payments. Total covers the page only.
type ListPaymentsResponse struct {
	Items     []PaymentResponse `json:"items"`
	Total     decimal.Decimal   `json:"total" swaggertype:"string"`
	Currency  string            `json:"currency"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToEntryResponse converts an ENTRY record.
func ToEntryResponse(rec *domain.LogRecord) EntryResponse {
	return EntryResponse{
		Pin:       rec.Pin,
		RecordID:  rec.RecordID,
		Timestamp: rec.Timestamp,
	}
}

// ToExitResponse converts an exit result.
func ToExitResponse(res *domain.ExitResult) ExitResponse {
	return ExitResponse{
		Pin:             res.Pin,
		EntryRecordID:   res.EntryRecordID,
		ExitRecordID:    res.ExitRecordID,
		EntryTime:       res.EntryTime,
		ExitTime:        res.ExitTime,
		DurationMinutes: res.DurationMinutes,
		Amount:          res.Amount,
		Currency:        res.Currency,
	}
}

// ToHistoryItemResponse converts a projected history item.
func ToHistoryItemResponse(item domain.HistoryItem) HistoryItemResponse {
	return HistoryItemResponse{
		RecordID:        item.RecordID,
		EventType:       string(item.EventType),
		Pin:             item.Pin,
		Timestamp:       item.Timestamp,
		EntryTime:       item.EntryTime,
		ExitTime:        item.ExitTime,
		DurationMinutes: item.DurationMinutes,
		Amount:          item.Amount,
		Status:          string(item.Status),
	}
}

// ToPaymentResponse converts a record that carries an amount.
func ToPaymentResponse(rec domain.LogRecord) PaymentResponse {
	resp := PaymentResponse{
		RecordID:  rec.RecordID,
		Pin:       rec.Pin,
		Timestamp: rec.Timestamp,
	}
	if rec.DurationMinutes != nil {
		resp.DurationMinutes = *rec.DurationMinutes
	}
	if rec.Amount != nil {
		resp.Amount = *rec.Amount
	}
	return resp
}
