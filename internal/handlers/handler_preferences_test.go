package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/SscSPs/parkmate_app/internal/dto"
	"github.com/SscSPs/parkmate_app/internal/handlers"
	"github.com/SscSPs/parkmate_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

// OperatorFlowTestSuite drives preferences, API tokens and the gate endpoints
// through the real services.
type OperatorFlowTestSuite struct {
	suite.Suite
	router      *gin.Engine
	accessToken string
}

func (suite *OperatorFlowTestSuite) SetupTest() {
	cfg := testConfig()
	svcs := newTestServices(cfg, newRecordingMailer())
	suite.router = newTestRouter(suite.T(), cfg, svcs)

	w := performRequest(suite.router, http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{
		Email:           "gate@parkmate.app",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}, nil)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.accessToken = decode[dto.AuthResponse](suite.T(), w).AccessToken
}

func TestOperatorFlowTestSuite(t *testing.T) {
	suite.Run(t, new(OperatorFlowTestSuite))
}

func (suite *OperatorFlowTestSuite) withKey(key string) map[string]string {
	return map[string]string{middleware.APIKeyHeader: key}
}

func (suite *OperatorFlowTestSuite) TestPreferences_Defaults() {
	w := performRequest(suite.router, http.MethodGet, "/api/v1/preferences", nil, bearer(suite.accessToken))

	suite.Equal(http.StatusOK, w.Code)
	resp := decode[dto.ListPreferencesResponse](suite.T(), w)
	suite.Require().Len(resp.Preferences, 2)
	for _, p := range resp.Preferences {
		suite.True(p.IsDefault, p.Key)
	}
	suite.Equal("theme", resp.Preferences[0].Key)
	suite.Equal("dark", resp.Preferences[0].Value)
	suite.Equal("language", resp.Preferences[1].Key)
	suite.Equal("en", resp.Preferences[1].Value)
}

func (suite *OperatorFlowTestSuite) TestPreferences_StoredLanguageLocalizesErrors() {
	w := performRequest(suite.router, http.MethodPut, "/api/v1/preferences/language",
		dto.UpdatePreferenceRequest{Value: "tr"}, bearer(suite.accessToken))
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal("tr", decode[dto.PreferenceResponse](suite.T(), w).Value)

	w = performRequest(suite.router, http.MethodGet, "/api/v1/preferences/language", nil, bearer(suite.accessToken))
	got := decode[dto.PreferenceResponse](suite.T(), w)
	suite.Equal("tr", got.Value)
	suite.False(got.IsDefault)

	w = performRequest(suite.router, http.MethodPost, "/api/v1/parking/exits", dto.ExitRequest{Pin: "0000"}, bearer(suite.accessToken))
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("Bu PIN koduyla giriş bulunamadı.", decode[dto.ErrorResponse](suite.T(), w).Error)

	headers := bearer(suite.accessToken)
	headers["Accept-Language"] = "en-US"
	w = performRequest(suite.router, http.MethodPost, "/api/v1/parking/exits", dto.ExitRequest{Pin: "0000"}, headers)
	suite.Equal("No entry found with this PIN code.", decode[dto.ErrorResponse](suite.T(), w).Error, "an explicit header wins")
}

func (suite *OperatorFlowTestSuite) TestPreferences_Rejected() {
	w := performRequest(suite.router, http.MethodPut, "/api/v1/preferences/font",
		dto.UpdatePreferenceRequest{Value: "serif"}, bearer(suite.accessToken))
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(handlers.CodeUnknownPreference, decode[dto.ErrorResponse](suite.T(), w).Code)

	w = performRequest(suite.router, http.MethodPut, "/api/v1/preferences/theme",
		dto.UpdatePreferenceRequest{Value: "blue"}, bearer(suite.accessToken))
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(handlers.CodeUnknownPreference, decode[dto.ErrorResponse](suite.T(), w).Code)

	w = performRequest(suite.router, http.MethodPut, "/api/v1/preferences/theme",
		map[string]string{}, bearer(suite.accessToken))
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(handlers.CodeInvalidRequest, decode[dto.ErrorResponse](suite.T(), w).Code)
}

func (suite *OperatorFlowTestSuite) TestAPIToken_GateTerminalLifecycle() {
	w := performRequest(suite.router, http.MethodPost, "/api/v1/tokens",
		dto.CreateAPITokenRequest{Name: "North gate kiosk"}, bearer(suite.accessToken))
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.CreateAPITokenResponse](suite.T(), w)
	suite.True(strings.HasPrefix(created.Token, "pm_"))
	suite.Equal("North gate kiosk", created.Details.Name)
	suite.Nil(created.Details.ExpiresAt)

	w = performRequest(suite.router, http.MethodPost, "/api/v1/parking/entries", nil, suite.withKey(created.Token))
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	entry := decode[dto.EntryResponse](suite.T(), w)
	suite.Len(entry.Pin, 4)

	w = performRequest(suite.router, http.MethodPost, "/api/v1/parking/exits", dto.ExitRequest{Pin: entry.Pin}, suite.withKey(created.Token))
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	exit := decode[dto.ExitResponse](suite.T(), w)
	suite.Equal(entry.RecordID, exit.EntryRecordID)
	suite.Equal(int64(1), exit.DurationMinutes)
	suite.Equal("10", exit.Amount.String())

	w = performRequest(suite.router, http.MethodGet, "/api/v1/parking/payments", nil, suite.withKey(created.Token))
	suite.Equal(http.StatusOK, w.Code)
	payments := decode[dto.ListPaymentsResponse](suite.T(), w)
	suite.Len(payments.Items, 1)
	suite.Equal("10", payments.Total.String())

	w = performRequest(suite.router, http.MethodGet, "/api/v1/tokens", nil, bearer(suite.accessToken))
	suite.Equal(http.StatusOK, w.Code)
	listed := decode[[]dto.APITokenResponse](suite.T(), w)
	suite.Require().Len(listed, 1)
	suite.Equal(created.Details.ID, listed[0].ID)
	suite.NotNil(listed[0].LastUsedAt)

	w = performRequest(suite.router, http.MethodDelete, "/api/v1/tokens/"+created.Details.ID, nil, bearer(suite.accessToken))
	suite.Equal(http.StatusNoContent, w.Code)

	w = performRequest(suite.router, http.MethodPost, "/api/v1/parking/entries", nil, suite.withKey(created.Token))
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *OperatorFlowTestSuite) TestAPIToken_RevokeAll() {
	for _, name := range []string{"North gate", "South gate"} {
		w := performRequest(suite.router, http.MethodPost, "/api/v1/tokens",
			dto.CreateAPITokenRequest{Name: name}, bearer(suite.accessToken))
		suite.Require().Equal(http.StatusCreated, w.Code)
	}

	w := performRequest(suite.router, http.MethodDelete, "/api/v1/tokens", nil, bearer(suite.accessToken))
	suite.Equal(http.StatusNoContent, w.Code)

	w = performRequest(suite.router, http.MethodGet, "/api/v1/tokens", nil, bearer(suite.accessToken))
	suite.Empty(decode[[]dto.APITokenResponse](suite.T(), w))
}

func (suite *OperatorFlowTestSuite) TestAPIToken_BadInput() {
	w := performRequest(suite.router, http.MethodDelete, "/api/v1/tokens/not-a-uuid", nil, bearer(suite.accessToken))
	suite.Equal(http.StatusBadRequest, w.Code)

	w = performRequest(suite.router, http.MethodDelete, "/api/v1/tokens/550e8400-e29b-41d4-a716-446655440000", nil, bearer(suite.accessToken))
	suite.Equal(http.StatusNotFound, w.Code)

	w = performRequest(suite.router, http.MethodPost, "/api/v1/tokens",
		dto.CreateAPITokenRequest{Name: "ab"}, bearer(suite.accessToken))
	suite.Equal(http.StatusBadRequest, w.Code)

	w = performRequest(suite.router, http.MethodPost, "/api/v1/parking/entries", nil, suite.withKey("pm_unknown"))
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *OperatorFlowTestSuite) TestHistory_PairsEntryAndExit() {
	w := performRequest(suite.router, http.MethodPost, "/api/v1/parking/entries", nil, bearer(suite.accessToken))
	suite.Require().Equal(http.StatusCreated, w.Code)
	first := decode[dto.EntryResponse](suite.T(), w)

	w = performRequest(suite.router, http.MethodPost, "/api/v1/parking/entries", nil, bearer(suite.accessToken))
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = performRequest(suite.router, http.MethodPost, "/api/v1/parking/exits", dto.ExitRequest{Pin: first.Pin}, bearer(suite.accessToken))
	suite.Require().Equal(http.StatusOK, w.Code)

	w = performRequest(suite.router, http.MethodGet, "/api/v1/parking/history", nil, bearer(suite.accessToken))
	suite.Require().Equal(http.StatusOK, w.Code)
	history := decode[dto.ListHistoryResponse](suite.T(), w)
	suite.Require().Len(history.Items, 3)
	suite.Equal("TL", history.Currency)

	var active, completed int
	for _, item := range history.Items {
		switch item.StatusLabel {
		case "Active":
			active++
		case "Completed":
			completed++
		}
	}
	suite.Equal(1, active)
	suite.Equal(2, completed)

	w = performRequest(suite.router, http.MethodDelete, "/api/v1/parking/logs?confirm=true", nil, bearer(suite.accessToken))
	suite.Equal(http.StatusOK, w.Code)

	w = performRequest(suite.router, http.MethodGet, "/api/v1/parking/history", nil, bearer(suite.accessToken))
	suite.Empty(decode[dto.ListHistoryResponse](suite.T(), w).Items)
}
