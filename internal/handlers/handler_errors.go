package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/parkmate_app/internal/apperrors"
	"github.com/SscSPs/parkmate_app/internal/core/services"
	"github.com/SscSPs/parkmate_app/internal/dto"
	"github.com/SscSPs/parkmate_app/internal/i18n"
	"github.com/SscSPs/parkmate_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Error codes for failures that are not auth/* codes.
const (
	CodePinNotFound      = "parking/pin-not-found"
	CodeConfirmRequired  = "parking/confirm-required"
	CodeInvalidRequest   = "request/invalid"
	CodeUnauthorized     = "request/unauthorized"
	CodeNotFound         = "request/not-found"
	CodeConflict         = "request/conflict"
	CodeStoreUnavailable = "store/unavailable"
	CodeInternal         = "internal"
	CodeGoogleDisabled   = "auth/google-not-configured"
)

// responder renders localized error bodies. Every handler embeds it.
type responder struct {
	translator *i18n.Translator
}

func (r responder) message(c *gin.Context, key i18n.MessageKey) string {
	return r.translator.Message(middleware.GetLocale(c), key)
}

func (r responder) abort(c *gin.Context, status int, code string, key i18n.MessageKey, details ...string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Error:   r.message(c, key),
		Code:    code,
		Details: details,
	})
}

// bindError answers a request whose body or query failed to bind.
func (r responder) bindError(c *gin.Context, err error) {
	middleware.GetLoggerFromContext(c).Warn("Failed to bind request", slog.String("error", err.Error()))
	details := r.translator.ValidationMessages(middleware.GetLocale(c), err)
	r.abort(c, http.StatusBadRequest, CodeInvalidRequest, i18n.MsgInvalidRequest, details...)
}

// fail maps a service error to a status code and a localized message.
func (r responder) fail(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromContext(c)

	// A storage outage wins over whatever else is in the chain.
	if errors.Is(err, apperrors.ErrStoreUnavailable) {
		logger.Error("Store unavailable", slog.String("error", err.Error()))
		r.abort(c, http.StatusServiceUnavailable, CodeStoreUnavailable, i18n.MsgStoreUnavailable)
		return
	}
	if errors.Is(err, services.ErrGoogleNotConfigured) {
		r.abort(c, http.StatusServiceUnavailable, CodeGoogleDisabled, i18n.MsgGoogleNotConfigured)
		return
	}
	if code, ok := apperrors.AuthCodeOf(err); ok {
		if code == apperrors.AuthLoginFailed {
			logger.Error("Authentication failed", slog.String("error", err.Error()))
		}
		r.abort(c, statusFor(err), string(code), i18n.KeyForAuthCode(code))
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrPinNotFound):
		r.abort(c, http.StatusNotFound, CodePinNotFound, i18n.MsgPinNotFound)
	case errors.Is(err, apperrors.ErrRefreshTokenExpired):
		r.abort(c, http.StatusUnauthorized, CodeUnauthorized, i18n.MsgSessionExpired)
	case errors.Is(err, apperrors.ErrValidation):
		r.abort(c, http.StatusBadRequest, CodeInvalidRequest, i18n.MsgInvalidRequest, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		r.abort(c, http.StatusUnauthorized, CodeUnauthorized, i18n.MsgUnauthorized)
	case errors.Is(err, apperrors.ErrNotFound):
		r.abort(c, http.StatusNotFound, CodeNotFound, i18n.MsgNotFound)
	case errors.Is(err, apperrors.ErrDuplicate):
		r.abort(c, http.StatusConflict, CodeConflict, i18n.MsgConflict)
	default:
		logger.Error("Unhandled error", slog.String("error", err.Error()))
		r.abort(c, http.StatusInternalServerError, CodeInternal, i18n.MsgInternalError)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusUnauthorized
	}
}

// requireUser returns the authenticated user ID or answers 401.
func (r responder) requireUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		r.abort(c, http.StatusUnauthorized, CodeUnauthorized, i18n.MsgUnauthorized)
		return "", false
	}
	return userID, true
}
