package services

import (
	"context"

	"github.com/SscSPs/parkmate_app/internal/core/domain"
	"github.com/SscSPs/parkmate_app/internal/dto"
)

// ParkingEntrySvc records vehicles entering and leaving.
type ParkingEntrySvc interface {
	// RecordEntry issues a PIN and appends an ENTRY record.
	RecordEntry(ctx context.Context) (*domain.LogRecord, error)

	// RecordExit resolves pin to its latest ENTRY, prices the stay and appends
	// an EXIT record. Returns apperrors.ErrPinNotFound when no entry matches.
	RecordExit(ctx context.Context, pin string) (*domain.ExitResult, error)
}

// ParkingReportSvc serves the read-only views over the log.
type ParkingReportSvc interface {
	// ListHistory returns every record annotated with its entry/exit pairing.
	ListHistory(ctx context.Context, params dto.ListLogsParams) (*dto.ListHistoryResponse, error)

	// ListPayments returns the records that carry an amount.
	ListPayments(ctx context.Context, params dto.ListLogsParams) (*dto.ListPaymentsResponse, error)
}

// ParkingAdminSvc holds destructive maintenance operations.
type ParkingAdminSvc interface {
	// DeleteAllLogs purges the log. confirm must be true and requestingUserID non-empty.
	DeleteAllLogs(ctx context.Context, requestingUserID string, confirm bool) error
}

// ParkingSvcFacade combines all parking service interfaces
type ParkingSvcFacade interface {
	ParkingEntrySvc
	ParkingReportSvc
	ParkingAdminSvc
}

// PinGenerator produces candidate parking PINs.
type PinGenerator interface {
	Generate() (string, error)
}
