package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	portssvc "github.com/SscSPs/parkmate_app/internal/core/ports/services"
	"github.com/SscSPs/parkmate_app/internal/core/services"
	"github.com/SscSPs/parkmate_app/internal/dto"
	"github.com/SscSPs/parkmate_app/internal/i18n"
	"github.com/SscSPs/parkmate_app/internal/middleware"
	"github.com/SscSPs/parkmate_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// oauthStateCookie holds the CSRF state between /google/login and /google/callback.
const oauthStateCookie = "pm_oauth_state"

const oauthStateMaxAge = 600

// GoogleOAuthHandler handles Google sign-in. Both the ID-token flow used by
// the mobile client and the browser redirect flow end in a ParkMate session.
type GoogleOAuthHandler struct {
	responder
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	authService        portssvc.AuthSvcFacade
	clientID           string
	frontendBaseURL    string
	secureCookies      bool
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(cfg *config.Config, svcs *portssvc.ServiceContainer, translator *i18n.Translator) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		responder:          responder{translator: translator},
		googleOAuthService: svcs.GoogleOAuthHandler,
		authService:        svcs.Auth,
		clientID:           cfg.GoogleClientID,
		frontendBaseURL:    strings.TrimRight(cfg.FrontendBaseURL, "/"),
		secureCookies:      cfg.IsProduction,
	}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(auth *gin.RouterGroup, h *GoogleOAuthHandler) {
	googleRoutes := auth.Group("/google")
	{
		googleRoutes.POST("/token", h.SignInWithIDToken)
		googleRoutes.GET("/login", h.Login)
		googleRoutes.GET("/callback", h.Callback)
	}
}

// SignInWithIDToken godoc
// @Summary Sign in with a Google ID token
// @Description Validates an ID token obtained by the client from Google and opens a session.
// @Tags oauth
// @Accept json
// @Produce json
// @Param request body dto.GoogleTokenRequest true "Google ID token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse "Google sign-in not configured"
// @Router /auth/google/token [post]
func (h *GoogleOAuthHandler) SignInWithIDToken(c *gin.Context) {
	var req dto.GoogleTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}
	s, err := h.authService.SignInWithGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAuthResponse(s))
}

// Login godoc
// @Summary Start the Google redirect flow
// @Description Redirects the browser to Google's consent screen.
// @Tags oauth
// @Success 307 "Redirect to Google"
// @Failure 503 {object} dto.ErrorResponse "Google sign-in not configured"
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) Login(c *gin.Context) {
	if h.clientID == "" {
		h.fail(c, services.ErrGoogleNotConfigured)
		return
	}
	ctx := c.Request.Context()
	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/", "", h.secureCookies, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetGoogleLoginURL(ctx, state))
}

// Callback godoc
// @Summary Finish the Google redirect flow
// @Description Exchanges the authorization code, opens a session and redirects to the frontend with the tokens in the URL fragment.
// @Tags oauth
// @Param state query string true "CSRF state"
// @Param code query string true "Authorization code"
// @Success 302 "Redirect to the frontend"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromContext(c)

	expected, err := c.Cookie(oauthStateCookie)
	if err != nil || expected == "" || c.Query("state") != expected {
		logger.Warn("OAuth state mismatch")
		h.abort(c, http.StatusBadRequest, CodeInvalidRequest, i18n.MsgInvalidRequest, "state mismatch")
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.secureCookies, true)

	code := c.Query("code")
	if code == "" {
		h.abort(c, http.StatusBadRequest, CodeInvalidRequest, i18n.MsgInvalidRequest, "code is required")
		return
	}

	token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.Warn("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		h.abort(c, http.StatusUnauthorized, string(apperrors.AuthInvalidGoogleToken), i18n.MsgInvalidGoogleToken)
		return
	}
	info, err := h.googleOAuthService.GetUserInfo(ctx, token)
	if err != nil {
		logger.Warn("Failed to load Google user info", slog.String("error", err.Error()))
		h.abort(c, http.StatusUnauthorized, string(apperrors.AuthInvalidGoogleToken), i18n.MsgInvalidGoogleToken)
		return
	}

	s, err := h.authService.SignInWithGoogleUser(ctx, info)
	if err != nil {
		h.fail(c, err)
		return
	}

	fragment := url.Values{}
	fragment.Set("accessToken", s.AccessToken)
	fragment.Set("refreshToken", s.RefreshToken)
	fragment.Set("userID", s.User.UserID)
	c.Redirect(http.StatusFound, h.frontendBaseURL+"/auth/callback#"+fragment.Encode())
}
