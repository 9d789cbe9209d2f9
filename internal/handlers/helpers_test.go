package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	portssvc "github.com/SscSPs/parkmate_app/internal/core/ports/services"
	"github.com/SscSPs/parkmate_app/internal/core/services"
	"github.com/SscSPs/parkmate_app/internal/handlers"
	"github.com/SscSPs/parkmate_app/internal/i18n"
	"github.com/SscSPs/parkmate_app/internal/middleware"
	"github.com/SscSPs/parkmate_app/internal/platform/config"
	"github.com/SscSPs/parkmate_app/internal/repositories/memory"
	"github.com/SscSPs/parkmate_app/internal/session"
	"github.com/SscSPs/parkmate_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-for-handlers"

func testConfig() *config.Config {
	return &config.Config{
		IsProduction:               true,
		LogStoreDriver:             config.StoreDriverMemory,
		JWTSecret:                  testJWTSecret,
		JWTIssuer:                  "parkmate",
		JWTExpiryDuration:          time.Hour,
		RefreshTokenExpiryDuration: 24 * time.Hour,
		PasswordResetTTL:           time.Hour,
		ParkingUnitRate:            decimal.NewFromInt(10),
		ParkingCurrency:            "TL",
		DefaultTheme:               "dark",
		DefaultLanguage:            "en",
		LoginRateLimit:             "1000-M",
		ExitRateLimit:              "1000-M",
		FrontendBaseURL:            "http://frontend.test",
	}
}

// recordingMailer keeps the last reset token per recipient.
type recordingMailer struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{tokens: make(map[string]string)}
}

func (m *recordingMailer) SendPasswordReset(_ context.Context, to, token string, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[to] = token
	return nil
}

func (m *recordingMailer) tokenFor(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens[to]
}

// newTestServices wires the real services over in-memory stores.
func newTestServices(cfg *config.Config, mailer portssvc.Mailer) *portssvc.ServiceContainer {
	return services.NewServiceContainer(cfg, memory.NewRepositoryProvider(), session.NewNavigator(), nil, mailer)
}

// newTestRouter builds the engine the way main does, minus CORS and analytics.
func newTestRouter(t *testing.T, cfg *config.Config, svcs *portssvc.ServiceContainer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	translator, err := i18n.New(cfg.DefaultLanguage)
	require.NoError(t, err)

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))),
		gin.Recovery(),
		middleware.Locale(translator),
	)
	require.NoError(t, handlers.RegisterRoutes(r, cfg, svcs, translator))
	return r
}

func generateTestJWT(t *testing.T, userID string) string {
	t.Helper()
	token, err := utils.GenerateJWT(userID, testJWTSecret, time.Hour, "parkmate")
	require.NoError(t, err)
	return token
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func performRequest(r http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
