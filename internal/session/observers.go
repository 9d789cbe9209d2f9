package session

import (
	"context"
	"log/slog"

	"github.com/SscSPs/parkmate_app/internal/utils"
)

// LoggerFrom returns the logger to use for a context.
type LoggerFrom func(ctx context.Context) *slog.Logger

// LoggingObserver writes every transition to the request logger.
func LoggingObserver(loggerFrom LoggerFrom) Observer {
	return ObserverFunc(func(ctx context.Context, t Transition) {
		loggerFrom(ctx).Info("Session state changed",
			slog.String("user_id", t.UserID),
			slog.String("from", string(t.From)),
			slog.String("to", string(t.To)),
			slog.String("event", string(t.Event)),
			slog.String("route", t.To.Route()),
		)
	})
}

// AnalyticsObserver forwards transitions to PostHog as "session_<event>".
func AnalyticsObserver(client *utils.PosthogClientWrapper) Observer {
	return ObserverFunc(func(_ context.Context, t Transition) {
		client.Enqueue(t.UserID, "session_"+string(t.Event), map[string]any{
			"from": string(t.From),
			"to":   string(t.To),
		})
	})
}
