package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/parkmate_app/internal/core/ports/services"
	"github.com/SscSPs/parkmate_app/internal/dto"
	"github.com/SscSPs/parkmate_app/internal/i18n"
	"github.com/SscSPs/parkmate_app/internal/middleware"
	"github.com/SscSPs/parkmate_app/internal/session"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	responder
	authService  portssvc.AuthSvcFacade
	userService  portssvc.UserSvcFacade
	resetService portssvc.PasswordResetSvc
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(services *portssvc.ServiceContainer, translator *i18n.Translator) *AuthHandler {
	return &AuthHandler{
		responder:    responder{translator: translator},
		authService:  services.Auth,
		userService:  services.User,
		resetService: services.PasswordReset,
	}
}

// registerAuthRoutes sets up the public routes for authentication.
func registerAuthRoutes(auth *gin.RouterGroup, h *AuthHandler, limited gin.HandlerFunc) {
	auth.POST("/login", limited, h.Login)
	auth.POST("/register", h.Register)
	auth.POST("/refresh", h.Refresh)
	auth.POST("/password/reset", limited, h.RequestPasswordReset)
	auth.POST("/password/reset/confirm", h.ConfirmPasswordReset)
	auth.GET("/session", h.Session)
}

// registerAccountRoutes sets up the authentication routes that need a signed-in user.
func registerAccountRoutes(auth *gin.RouterGroup, h *AuthHandler) {
	auth.POST("/logout", h.Logout)
	auth.POST("/password/change", h.ChangePassword)
}

// Login godoc
// @Summary User login
// @Description Authenticates a user with email and password and opens a session.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}
	s, err := h.authService.SignIn(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAuthResponse(s))
}

// Register godoc
// @Summary Register new user
// @Description Creates a local account and opens a session.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}
	s, err := h.authService.SignUp(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAuthResponse(s))
}

// Refresh godoc
// @Summary Refresh access token
// @Description Exchanges a refresh token for a new access token. The refresh token is rotated.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}
	s, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRefreshTokenResponse(s))
}

// Logout godoc
// @Summary Sign out
// @Description Revokes the refresh token of the signed-in user.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 204 "Signed out"
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	if err := h.authService.SignOut(c.Request.Context(), userID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ChangePassword godoc
// @Summary Change password
// @Description Verifies the current password and stores a new one.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Passwords"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/password/change [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}
	if err := h.userService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: h.message(c, i18n.MsgPasswordChanged)})
}

// RequestPasswordReset godoc
// @Summary Request a password reset
// @Description Mails a single-use reset link to the account's email address.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.PasswordResetRequest true "Email"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Unknown email"
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/password/reset [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}
	if err := h.resetService.SendPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: h.message(c, i18n.MsgPasswordResetSent)})
}

// ConfirmPasswordReset godoc
// @Summary Confirm a password reset
// @Description Redeems a reset token and sets a new password.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.PasswordResetConfirmRequest true "Token and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired token"
// @Router /auth/password/reset/confirm [post]
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req dto.PasswordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}
	if err := h.resetService.ConfirmPasswordReset(c.Request.Context(), req); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: h.message(c, i18n.MsgPasswordChanged)})
}

// Session godoc
// @Summary Current session
// @Description Reports whether the bearer token belongs to a signed-in user and which screen to show.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	token, _ := middleware.BearerToken(c.GetHeader("Authorization"))
	user, err := h.authService.CurrentSession(c.Request.Context(), token)
	if err != nil {
		h.fail(c, err)
		return
	}
	if user == nil {
		state := session.StateUnauthenticated
		c.JSON(http.StatusOK, dto.SessionResponse{State: string(state), Route: state.Route()})
		return
	}
	state := session.StateAuthenticated
	resp := dto.ToUserResponse(user)
	c.JSON(http.StatusOK, dto.SessionResponse{State: string(state), Route: state.Route(), User: &resp})
}
