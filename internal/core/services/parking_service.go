package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	"github.com/SscSPs/parkmate_app/internal/core/domain"
	portsrepo "github.com/SscSPs/parkmate_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/parkmate_app/internal/core/ports/services"
	"github.com/SscSPs/parkmate_app/internal/dto"
	"github.com/SscSPs/parkmate_app/internal/middleware"
	"github.com/SscSPs/parkmate_app/internal/utils"
	"github.com/SscSPs/parkmate_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// parkingService is the PIN ledger. Every operation is one ReadAll and/or one
// Append against the log store; there is no locking between them.
type parkingService struct {
	BaseService
	store     portsrepo.LogStore
	generator portssvc.PinGenerator
	tariff    domain.Tariff
	analytics *utils.PosthogClientWrapper
}

// ParkingOption is a functional option for configuring the parking service
type ParkingOption func(*parkingService)

// WithClock overrides the time source.
func WithClock(now Clock) ParkingOption {
	return func(s *parkingService) {
		s.now = now
	}
}

// WithPinGenerator overrides the PIN source.
func WithPinGenerator(g portssvc.PinGenerator) ParkingOption {
	return func(s *parkingService) {
		s.generator = g
	}
}

// WithTariff sets the unit rate and currency.
func WithTariff(t domain.Tariff) ParkingOption {
	return func(s *parkingService) {
		s.tariff = t
	}
}

// WithAnalytics sends entry and exit events to PostHog.
func WithAnalytics(client *utils.PosthogClientWrapper) ParkingOption {
	return func(s *parkingService) {
		s.analytics = client
	}
}

// NewParkingService creates a new parking service with the provided options
func NewParkingService(store portsrepo.LogStore, options ...ParkingOption) portssvc.ParkingSvcFacade {
	svc := &parkingService{
		store:     store,
		generator: NewPinGenerator(),
		tariff:    domain.DefaultTariff(),
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure parkingService implements the ParkingSvcFacade interface
var _ portssvc.ParkingSvcFacade = (*parkingService)(nil)

func (s *parkingService) RecordEntry(ctx context.Context) (*domain.LogRecord, error) {
	pin, err := s.generator.Generate()
	if err != nil {
		s.LogError(ctx, err, "Failed to generate PIN")
		return nil, fmt.Errorf("generate pin: %w", err)
	}

	rec := domain.NewEntryRecord(pin, s.Now())
	recordID, err := s.store.Append(ctx, rec)
	if err != nil {
		s.LogError(ctx, err, "Failed to append entry record")
		return nil, storeError("append entry", err)
	}
	rec.RecordID = recordID

	s.LogInfo(ctx, "Vehicle entered", slog.String("record_id", recordID), slog.String("pin", pin))
	s.track(ctx, "parking_entry", map[string]any{"record_id": recordID})
	return &rec, nil
}

func (s *parkingService) RecordExit(ctx context.Context, pin string) (*domain.ExitResult, error) {
	if !domain.IsValidPin(pin) {
		return nil, fmt.Errorf("pin %q must be %d digits: %w", pin, domain.PinLength, apperrors.ErrValidation)
	}

	records, err := s.store.ReadAll(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read log for exit", slog.String("pin", pin))
		return nil, storeError("read log", err)
	}

	entry, ok := latestEntryFor(records, pin)
	if !ok {
		s.LogInfo(ctx, "Exit rejected, no entry for PIN", slog.String("pin", pin))
		return nil, fmt.Errorf("exit for pin %s: %w", pin, apperrors.ErrPinNotFound)
	}

	now := domain.NormalizeTimestamp(s.Now())
	minutes, amount := s.tariff.Price(now.Sub(entry.Timestamp))

	exit := domain.NewExitRecord(pin, now, minutes, amount)
	exitID, err := s.store.Append(ctx, exit)
	if err != nil {
		s.LogError(ctx, err, "Failed to append exit record", slog.String("pin", pin))
		return nil, storeError("append exit", err)
	}

	s.LogInfo(ctx, "Vehicle exited",
		slog.String("pin", pin),
		slog.String("entry_record_id", entry.RecordID),
		slog.String("exit_record_id", exitID),
		slog.Int64("duration_minutes", minutes),
		slog.String("amount", amount.String()))
	s.track(ctx, "parking_exit", map[string]any{
		"duration_minutes": minutes,
		"amount":           amount.String(),
		"currency":         s.tariff.Currency,
	})

	return &domain.ExitResult{
		Pin:             pin,
		EntryRecordID:   entry.RecordID,
		ExitRecordID:    exitID,
		EntryTime:       entry.Timestamp,
		ExitTime:        now,
		DurationMinutes: minutes,
		Amount:          amount,
		Currency:        s.tariff.Currency,
	}, nil
}

// latestEntryFor returns the chronologically last ENTRY with pin. Equal
// timestamps resolve to the record appearing later in store order. EXIT
// records are not consulted.
func latestEntryFor(records []domain.LogRecord, pin string) (domain.LogRecord, bool) {
	var (
		best  domain.LogRecord
		found bool
	)
	for _, rec := range records {
		if !rec.IsEntry() || rec.Pin != pin {
			continue
		}
		if !found || !rec.Timestamp.Before(best.Timestamp) {
			best = rec
			found = true
		}
	}
	return best, found
}

func (s *parkingService) ListHistory(ctx context.Context, params dto.ListLogsParams) (*dto.ListHistoryResponse, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read log for history")
		return nil, storeError("read log", err)
	}

	items := ProjectHistory(records)
	s.LogDebug(ctx, "History projected", slog.Int("records", len(records)))
	page, next, err := paginate(items, params, func(it domain.HistoryItem) domain.LogRecord { return it.LogRecord })
	if err != nil {
		return nil, err
	}

	resp := &dto.ListHistoryResponse{
		Items:     make([]dto.HistoryItemResponse, 0, len(page)),
		Currency:  s.tariff.Currency,
		NextToken: next,
	}
	for _, it := range page {
		resp.Items = append(resp.Items, dto.ToHistoryItemResponse(it))
	}
	return resp, nil
}

func (s *parkingService) ListPayments(ctx context.Context, params dto.ListLogsParams) (*dto.ListPaymentsResponse, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read log for payments")
		return nil, storeError("read log", err)
	}

	payments := make([]domain.LogRecord, 0, len(records))
	for _, rec := range records {
		if rec.HasAmount() {
			payments = append(payments, rec)
		}
	}

	page, next, err := paginate(payments, params, func(r domain.LogRecord) domain.LogRecord { return r })
	if err != nil {
		return nil, err
	}

	resp := &dto.ListPaymentsResponse{
		Items:     make([]dto.PaymentResponse, 0, len(page)),
		Total:     decimal.Zero,
		Currency:  s.tariff.Currency,
		NextToken: next,
	}
	for _, rec := range page {
		resp.Items = append(resp.Items, dto.ToPaymentResponse(rec))
		resp.Total = resp.Total.Add(*rec.Amount)
	}
	return resp, nil
}

func (s *parkingService) DeleteAllLogs(ctx context.Context, requestingUserID string, confirm bool) error {
	if requestingUserID == "" {
		return fmt.Errorf("delete all logs: %w", apperrors.ErrUnauthorized)
	}
	if !confirm {
		return fmt.Errorf("delete all logs requires confirmation: %w", apperrors.ErrValidation)
	}

	if err := s.store.DeleteAll(ctx); err != nil {
		s.LogError(ctx, err, "Failed to delete parking log", slog.String("user_id", requestingUserID))
		return storeError("delete log", err)
	}

	s.LogInfo(ctx, "Parking log purged", slog.String("user_id", requestingUserID))
	s.track(ctx, "parking_logs_purged", nil)
	return nil
}

func (s *parkingService) track(ctx context.Context, event string, props map[string]any) {
	if !s.analytics.IsInitialized() {
		return
	}
	distinctID := "anonymous"
	if userID, ok := middleware.UserIDFromCtx(ctx); ok {
		distinctID = userID
	}
	s.analytics.Enqueue(distinctID, event, props)
}

// storeError keeps ErrStoreUnavailable in the chain exactly once.
func storeError(op string, err error) error {
	if errors.Is(err, apperrors.ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return apperrors.Unavailable(op, err)
}

// paginate slices items after the record named by params.NextToken.
func paginate[T any](items []T, params dto.ListLogsParams, recordOf func(T) domain.LogRecord) ([]T, *string, error) {
	start := 0
	if params.NextToken != "" {
		afterID, _, err := pagination.DecodeRecordToken(params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		start = -1
		for i, it := range items {
			if recordOf(it).RecordID == afterID {
				start = i + 1
				break
			}
		}
		if start < 0 {
			return nil, nil, fmt.Errorf("pagination token does not match any record: %w", apperrors.ErrValidation)
		}
	}

	limit := pagination.NormalizeLimit(params.Limit)
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	page := items[start:end]

	var next *string
	if end < len(items) && len(page) > 0 {
		last := recordOf(page[len(page)-1])
		token := pagination.EncodeRecordToken(last.RecordID, last.Timestamp)
		next = &token
	}
	return page, next, nil
}
