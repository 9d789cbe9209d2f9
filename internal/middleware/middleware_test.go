package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	"github.com/SscSPs/parkmate_app/internal/core/domain"
	"github.com/SscSPs/parkmate_app/internal/i18n"
	"github.com/SscSPs/parkmate_app/internal/middleware"
	"github.com/SscSPs/parkmate_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type MockAPITokenService struct {
	mock.Mock
}

func (m *MockAPITokenService) CreateToken(ctx context.Context, userID, name string, expiresIn *time.Duration) (string, *domain.APIToken, error) {
	args := m.Called(ctx, userID, name, expiresIn)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.APIToken), args.Error(2)
}

func (m *MockAPITokenService) ListTokens(ctx context.Context, userID string) ([]domain.APIToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.APIToken), args.Error(1)
}

func (m *MockAPITokenService) RevokeToken(ctx context.Context, userID, tokenID string) error {
	return m.Called(ctx, userID, tokenID).Error(0)
}

func (m *MockAPITokenService) RevokeAllTokens(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAPITokenService) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// whoami echoes what the auth middlewares stored.
func whoami(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	ctxUserID, _ := middleware.UserIDFromCtx(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"userID": userID, "ok": ok, "ctxUserID": ctxUserID})
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware(testSecret), whoami)

	valid, err := utils.GenerateJWT("user-1", testSecret, time.Hour, "parkmate")
	require.NoError(t, err)
	expired, err := utils.GenerateJWTAt("user-1", testSecret, time.Now().Add(-time.Hour), time.Minute, "parkmate")
	require.NoError(t, err)
	otherSecret, err := utils.GenerateJWT("user-1", "another-secret", time.Hour, "parkmate")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, ""},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, ""},
		{"missing header", "", http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized, "Authorization header format must be Bearer {token}"},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized, "Token has expired"},
		{"wrong secret", "Bearer " + otherSecret, http.StatusUnauthorized, "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(r, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
				return
			}
			assert.Equal(t, "user-1", body["userID"])
			assert.Equal(t, "user-1", body["ctxUserID"])
		})
	}
}

func TestBearerToken(t *testing.T) {
	tok, ok := middleware.BearerToken("Bearer  abc ")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	for _, h := range []string{"", "Bearer", "Bearer   ", "Token abc"} {
		_, ok := middleware.BearerToken(h)
		assert.False(t, ok, h)
	}
}

func TestAPITokenAuth(t *testing.T) {
	tokenSvc := new(MockAPITokenService)
	tokenSvc.On("ValidateToken", mock.Anything, "pm_good").Return(&domain.User{UserID: "terminal-owner"}, nil)
	tokenSvc.On("ValidateToken", mock.Anything, "pm_bad").Return(nil, apperrors.ErrUnauthorized)

	r := gin.New()
	r.GET("/me", middleware.APITokenAuth(tokenSvc), middleware.AuthMiddleware(testSecret), whoami)

	t.Run("valid key skips bearer check", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(middleware.APIKeyHeader, "pm_good")
		w := serve(r, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userID":"terminal-owner"`)
	})

	t.Run("rejected key falls through to bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(middleware.APIKeyHeader, "pm_bad")
		w := serve(r, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("no key", func(t *testing.T) {
		jwtToken, err := utils.GenerateJWT("operator", testSecret, time.Hour, "parkmate")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+jwtToken)
		w := serve(r, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userID":"operator"`)
	})

	tokenSvc.AssertNumberOfCalls(t, "ValidateToken", 2)
}

func TestLocale(t *testing.T) {
	translator, err := i18n.New("en")
	require.NoError(t, err)

	stored := func(_ context.Context, userID string) (string, error) {
		if userID == "broken" {
			return "", errors.New("store down")
		}
		return "tr", nil
	}

	r := gin.New()
	r.Use(middleware.Locale(translator))
	r.GET("/locale", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetLocale(c))
	})
	r.GET("/users/:id/locale", func(c *gin.Context) {
		c.Request = c.Request.WithContext(middleware.WithUserID(c.Request.Context(), c.Param("id")))
	}, middleware.StoredLanguage(translator, stored), func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetLocale(c))
	})

	tests := []struct {
		name   string
		path   string
		header string
		want   string
	}{
		{"default", "/locale", "", "en"},
		{"turkish region tag", "/locale", "tr-TR,tr;q=0.9,en;q=0.8", "tr"},
		{"unsupported falls back", "/locale", "de-DE", "en"},
		{"stored language applies", "/users/u1/locale", "", "tr"},
		{"explicit header wins over stored", "/users/u1/locale", "en", "en"},
		{"lookup failure keeps default", "/users/broken/locale", "", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestRateLimit(t *testing.T) {
	l, err := middleware.NewMemoryLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.POST("/exits", middleware.RateLimit(l), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := serve(r, httptest.NewRequest(http.MethodPost, "/exits", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := serve(r, httptest.NewRequest(http.MethodPost, "/exits", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	_, err = middleware.NewMemoryLimiter("lots")
	assert.Error(t, err)
}

func TestStructuredLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger))
	r.GET("/health", func(c *gin.Context) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("inside handler")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	w := serve(r, req)

	assert.Equal(t, "req-42", w.Header().Get(middleware.RequestIDHeader))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		assert.Equal(t, "req-42", entry["request_id"])
		assert.Equal(t, "/health", entry["path"])
	}

	var completed map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &completed))
	assert.Equal(t, "Request completed", completed["msg"])
	assert.EqualValues(t, http.StatusOK, completed["status"])
}

func TestStructuredLoggingMiddleware_GeneratesRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
}

func TestEventNameForRoute(t *testing.T) {
	assert.Equal(t, "api_v1_parking_exits", middleware.EventNameForRoute("/api/v1/parking/exits"))
	assert.Equal(t, "api_v1_tokens_tokenID", middleware.EventNameForRoute("/api/v1/tokens/:tokenID"))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS([]string{"https://admin.parkmate.app"}))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://admin.parkmate.app")
	w := serve(r, req)
	assert.Equal(t, "https://admin.parkmate.app", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = serve(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
