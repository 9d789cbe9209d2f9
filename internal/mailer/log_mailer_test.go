package mailer

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogMailer_SendPasswordReset(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(slog.New(slog.NewJSONHandler(&buf, nil)), "https://app.parkmate.test/")

	err := m.SendPasswordReset(context.Background(), "driver@example.com", "abc+/=", time.Now().Add(time.Hour))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"to":"driver@example.com"`)
	assert.Contains(t, out, "https://app.parkmate.test/reset-password?token=abc%2B%2F%3D")
}

func TestLogMailer_RejectsEmptyRecipient(t *testing.T) {
	m := NewLogMailer(nil, "http://localhost")
	assert.Error(t, m.SendPasswordReset(context.Background(), "", "tok", time.Now()))
}

func TestLogMailer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewLogMailer(nil, "http://localhost")
	assert.ErrorIs(t, m.SendPasswordReset(ctx, "a@b.co", "tok", time.Now()), context.Canceled)
}
