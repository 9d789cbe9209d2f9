package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	portssvc "github.com/SscSPs/parkmate_app/internal/core/ports/services"
	"github.com/SscSPs/parkmate_app/internal/dto"
	"github.com/SscSPs/parkmate_app/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

const (
	testEmail    = "operator@parkmate.app"
	testPassword = "secret1"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	svcs   *portssvc.ServiceContainer
	mailer *recordingMailer
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	cfg := testConfig()
	suite.mailer = newRecordingMailer()
	suite.svcs = newTestServices(cfg, suite.mailer)
	suite.router = newTestRouter(suite.T(), cfg, suite.svcs)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (suite *AuthHandlerTestSuite) register(email, password string) dto.AuthResponse {
	w := performRequest(suite.router, http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{
		Name:            "Gate Operator",
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	}, nil)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.AuthResponse](suite.T(), w)
}

func (suite *AuthHandlerTestSuite) login(email, password string) (int, dto.AuthResponse, dto.ErrorResponse) {
	w := performRequest(suite.router, http.MethodPost, "/api/v1/auth/login",
		dto.LoginRequest{Email: email, Password: password}, nil)
	if w.Code == http.StatusOK {
		return w.Code, decode[dto.AuthResponse](suite.T(), w), dto.ErrorResponse{}
	}
	return w.Code, dto.AuthResponse{}, decode[dto.ErrorResponse](suite.T(), w)
}

func (suite *AuthHandlerTestSuite) TestHealth() {
	w := performRequest(suite.router, http.MethodGet, "/health", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRegister_ThenDuplicate() {
	resp := suite.register("  Operator@ParkMate.app ", testPassword)
	suite.NotEmpty(resp.AccessToken)
	suite.NotEmpty(resp.RefreshToken)
	suite.Equal(testEmail, resp.User.Email)
	suite.Equal("local", resp.User.AuthProvider)

	w := performRequest(suite.router, http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{
		Email:           testEmail,
		Password:        testPassword,
		ConfirmPassword: testPassword,
	}, map[string]string{"Accept-Language": "tr"})

	suite.Equal(http.StatusConflict, w.Code)
	errResp := decode[dto.ErrorResponse](suite.T(), w)
	suite.Equal(string(apperrors.AuthEmailAlreadyInUse), errResp.Code)
	suite.Equal("Bu e-posta adresi zaten kayıtlı.", errResp.Error)
}

func (suite *AuthHandlerTestSuite) TestRegister_Validation() {
	tests := []struct {
		name string
		req  dto.RegisterRequest
		code apperrors.AuthCode
	}{
		{"missing fields", dto.RegisterRequest{Email: testEmail}, apperrors.AuthMissingFields},
		{"bad email", dto.RegisterRequest{Email: "not-an-email", Password: testPassword, ConfirmPassword: testPassword}, apperrors.AuthInvalidEmail},
		{"weak password", dto.RegisterRequest{Email: testEmail, Password: "abc", ConfirmPassword: "abc"}, apperrors.AuthWeakPassword},
		{"mismatch", dto.RegisterRequest{Email: testEmail, Password: testPassword, ConfirmPassword: "secret2"}, apperrors.AuthPasswordsMismatch},
	}
	for _, tt := range tests {
		w := performRequest(suite.router, http.MethodPost, "/api/v1/auth/register", tt.req, nil)
		suite.Equal(http.StatusBadRequest, w.Code, tt.name)
		suite.Equal(string(tt.code), decode[dto.ErrorResponse](suite.T(), w).Code, tt.name)
	}
}

func (suite *AuthHandlerTestSuite) TestLogin() {
	suite.register(testEmail, testPassword)

	status, resp, _ := suite.login(testEmail, testPassword)
	suite.Equal(http.StatusOK, status)
	suite.NotEmpty(resp.AccessToken)

	status, _, errResp := suite.login(testEmail, "wrong-one")
	suite.Equal(http.StatusUnauthorized, status)
	suite.Equal(string(apperrors.AuthWrongPassword), errResp.Code)
	suite.Equal("Wrong password. Please try again.", errResp.Error)

	status, _, errResp = suite.login("nobody@parkmate.app", testPassword)
	suite.Equal(http.StatusUnauthorized, status)
	suite.Equal(string(apperrors.AuthUserNotFound), errResp.Code)

	status, _, errResp = suite.login("", "")
	suite.Equal(http.StatusBadRequest, status)
	suite.Equal(string(apperrors.AuthMissingFields), errResp.Code)
}

func (suite *AuthHandlerTestSuite) TestSession() {
	w := performRequest(suite.router, http.MethodGet, "/api/v1/auth/session", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	anon := decode[dto.SessionResponse](suite.T(), w)
	suite.Equal("UNAUTHENTICATED", anon.State)
	suite.Equal("/(auth)/login", anon.Route)
	suite.Nil(anon.User)

	w = performRequest(suite.router, http.MethodGet, "/api/v1/auth/session", nil, bearer("not-a-jwt"))
	suite.Equal("UNAUTHENTICATED", decode[dto.SessionResponse](suite.T(), w).State)

	auth := suite.register(testEmail, testPassword)
	w = performRequest(suite.router, http.MethodGet, "/api/v1/auth/session", nil, bearer(auth.AccessToken))
	suite.Equal(http.StatusOK, w.Code)
	signedIn := decode[dto.SessionResponse](suite.T(), w)
	suite.Equal("AUTHENTICATED", signedIn.State)
	suite.Equal("/(tabs)", signedIn.Route)
	suite.Require().NotNil(signedIn.User)
	suite.Equal(auth.User.UserID, signedIn.User.UserID)
}

func (suite *AuthHandlerTestSuite) TestRefreshAndLogout() {
	auth := suite.register(testEmail, testPassword)

	w := performRequest(suite.router, http.MethodPost, "/api/v1/auth/refresh", dto.RefreshTokenRequest{
		UserID:       auth.User.UserID,
		RefreshToken: auth.RefreshToken,
	}, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	refreshed := decode[dto.RefreshTokenResponse](suite.T(), w)
	suite.NotEqual(auth.RefreshToken, refreshed.RefreshToken, "refresh token is rotated")

	w = performRequest(suite.router, http.MethodPost, "/api/v1/auth/refresh", dto.RefreshTokenRequest{
		UserID:       auth.User.UserID,
		RefreshToken: auth.RefreshToken,
	}, nil)
	suite.Equal(http.StatusUnauthorized, w.Code, "old refresh token no longer works")

	w = performRequest(suite.router, http.MethodPost, "/api/v1/auth/logout", nil, bearer(refreshed.AccessToken))
	suite.Equal(http.StatusNoContent, w.Code)

	w = performRequest(suite.router, http.MethodPost, "/api/v1/auth/refresh", dto.RefreshTokenRequest{
		UserID:       auth.User.UserID,
		RefreshToken: refreshed.RefreshToken,
	}, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRefresh_MissingFields() {
	w := performRequest(suite.router, http.MethodPost, "/api/v1/auth/refresh", map[string]string{}, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(handlers.CodeInvalidRequest, decode[dto.ErrorResponse](suite.T(), w).Code)
}

func (suite *AuthHandlerTestSuite) TestLogout_RequiresAuth() {
	w := performRequest(suite.router, http.MethodPost, "/api/v1/auth/logout", nil, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestMe() {
	auth := suite.register(testEmail, testPassword)

	w := performRequest(suite.router, http.MethodGet, "/api/v1/users/me", nil, bearer(auth.AccessToken))
	suite.Equal(http.StatusOK, w.Code)
	me := decode[dto.UserResponse](suite.T(), w)
	suite.Equal(auth.User.UserID, me.UserID)
	suite.Equal("Gate Operator", me.Name)

	w = performRequest(suite.router, http.MethodGet, "/api/v1/users/me", nil, bearer(generateTestJWT(suite.T(), "ghost")))
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AuthHandlerTestSuite) TestChangePassword() {
	auth := suite.register(testEmail, testPassword)

	w := performRequest(suite.router, http.MethodPost, "/api/v1/auth/password/change", dto.ChangePasswordRequest{
		CurrentPassword:    "wrong-one",
		NewPassword:        "secret2",
		ConfirmNewPassword: "secret2",
	}, bearer(auth.AccessToken))
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = performRequest(suite.router, http.MethodPost, "/api/v1/auth/password/change", dto.ChangePasswordRequest{
		CurrentPassword:    testPassword,
		NewPassword:        "secret2",
		ConfirmNewPassword: "secret2",
	}, bearer(auth.AccessToken))
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Your password has been changed.", decode[dto.MessageResponse](suite.T(), w).Message)

	status, _, _ := suite.login(testEmail, testPassword)
	suite.Equal(http.StatusUnauthorized, status)
	status, _, _ = suite.login(testEmail, "secret2")
	suite.Equal(http.StatusOK, status)
}

func (suite *AuthHandlerTestSuite) TestPasswordResetFlow() {
	suite.register(testEmail, testPassword)

	w := performRequest(suite.router, http.MethodPost, "/api/v1/auth/password/reset",
		dto.PasswordResetRequest{Email: "nobody@parkmate.app"}, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(string(apperrors.AuthUserNotFound), decode[dto.ErrorResponse](suite.T(), w).Code)

	w = performRequest(suite.router, http.MethodPost, "/api/v1/auth/password/reset",
		dto.PasswordResetRequest{Email: testEmail}, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal("A password reset link has been sent to your email.", decode[dto.MessageResponse](suite.T(), w).Message)

	token := suite.mailer.tokenFor(testEmail)
	suite.Require().NotEmpty(token)

	confirm := dto.PasswordResetConfirmRequest{Token: token, NewPassword: "secret9", ConfirmNewPassword: "secret9"}
	w = performRequest(suite.router, http.MethodPost, "/api/v1/auth/password/reset/confirm", confirm, nil)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	w = performRequest(suite.router, http.MethodPost, "/api/v1/auth/password/reset/confirm", confirm, nil)
	suite.Equal(http.StatusUnauthorized, w.Code, "reset tokens are single use")
	suite.Equal(string(apperrors.AuthInvalidResetToken), decode[dto.ErrorResponse](suite.T(), w).Code)

	status, _, _ := suite.login(testEmail, "secret9")
	suite.Equal(http.StatusOK, status)
}

func (suite *AuthHandlerTestSuite) TestGoogle_NotConfigured() {
	w := performRequest(suite.router, http.MethodPost, "/api/v1/auth/google/token",
		dto.GoogleTokenRequest{IDToken: "eyJ..."}, nil)
	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal(handlers.CodeGoogleDisabled, decode[dto.ErrorResponse](suite.T(), w).Code)

	w = performRequest(suite.router, http.MethodGet, "/api/v1/auth/google/login", nil, nil)
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *AuthHandlerTestSuite) TestGoogleCallback_StateMismatch() {
	w := performRequest(suite.router, http.MethodGet, "/api/v1/auth/google/callback?state=abc&code=xyz", nil,
		map[string]string{"Cookie": "pm_oauth_state=other"})

	suite.Equal(http.StatusBadRequest, w.Code)
	resp := decode[dto.ErrorResponse](suite.T(), w)
	suite.Equal(handlers.CodeInvalidRequest, resp.Code)
	suite.True(strings.Contains(strings.Join(resp.Details, " "), "state mismatch"))
}
