// Package mailer delivers transactional messages.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	portssvc "github.com/SscSPs/parkmate_app/internal/core/ports/services"
)

// LogMailer writes outgoing mail to the structured log. It stands in for a
// delivery provider until one is configured.
type LogMailer struct {
	logger       *slog.Logger
	resetBaseURL string
}

// NewLogMailer builds a LogMailer. Reset links point at frontendBaseURL.
func NewLogMailer(logger *slog.Logger, frontendBaseURL string) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{
		logger:       logger,
		resetBaseURL: strings.TrimRight(frontendBaseURL, "/") + "/reset-password",
	}
}

var _ portssvc.Mailer = (*LogMailer)(nil)

// ResetLink returns the link sent to the user for token.
func (m *LogMailer) ResetLink(token string) string {
	return fmt.Sprintf("%s?token=%s", m.resetBaseURL, url.QueryEscape(token))
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to, token string, expiresAt time.Time) error {
	if to == "" {
		return fmt.Errorf("recipient is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.logger.InfoContext(ctx, "Password reset email queued",
		slog.String("to", to),
		slog.String("link", m.ResetLink(token)),
		slog.Time("expires_at", expiresAt.UTC()),
	)
	return nil
}
