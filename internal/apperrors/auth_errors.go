package apperrors

import "errors"

// AuthCode is a stable identifier for an authentication failure. Clients map
// it to a localized message.
type AuthCode string

const (
	AuthInvalidEmail       AuthCode = "auth/invalid-email"
	AuthUserNotFound       AuthCode = "auth/user-not-found"
	AuthWrongPassword      AuthCode = "auth/wrong-password"
	AuthEmailAlreadyInUse  AuthCode = "auth/email-already-in-use"
	AuthWeakPassword       AuthCode = "auth/weak-password"
	AuthPasswordsMismatch  AuthCode = "auth/passwords-do-not-match"
	AuthMissingFields      AuthCode = "auth/missing-fields"
	AuthInvalidResetToken  AuthCode = "auth/invalid-reset-token"
	AuthLoginFailed        AuthCode = "auth/login-failed"
	AuthInvalidGoogleToken AuthCode = "auth/invalid-google-token"
)

// AuthError is returned by the identity service. It always unwraps to
// ErrUnauthorized or ErrValidation so handlers can pick a status code.
type AuthError struct {
	Code AuthCode
	Err  error
}

// NewAuthError builds an AuthError whose kind is derived from the code.
func NewAuthError(code AuthCode) *AuthError {
	kind := ErrUnauthorized
	switch code {
	case AuthInvalidEmail, AuthWeakPassword, AuthPasswordsMismatch, AuthMissingFields:
		kind = ErrValidation
	case AuthEmailAlreadyInUse:
		kind = ErrDuplicate
	}
	return &AuthError{Code: code, Err: kind}
}

func (e *AuthError) Error() string {
	return string(e.Code)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// AuthCodeOf extracts the AuthCode from err, if any.
func AuthCodeOf(err error) (AuthCode, bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Code, true
	}
	return "", false
}
