package dto

// Field presence and format are checked by the identity service so that the
// client receives a stable auth/* code instead of a validator message.

// LoginRequest carries email/password credentials.
type LoginRequest struct {
	Email    string `json:"email" example:"driver@parkmate.app"`
	Password string `json:"password" example:"secret1"`
}

// RegisterRequest creates a local account.
type RegisterRequest struct {
	Name            string `json:"name" example:"Gate Operator"`
	Email           string `json:"email" example:"driver@parkmate.app"`
	Password        string `json:"password" example:"secret1"`
	ConfirmPassword string `json:"confirmPassword" example:"secret1"`
}

// RefreshTokenRequest exchanges a refresh token for a new access token.
type RefreshTokenRequest struct {
	UserID       string `json:"userID" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ChangePasswordRequest changes the password of the signed-in user.
type ChangePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// PasswordResetRequest asks for a reset link to be mailed.
type PasswordResetRequest struct {
	Email string `json:"email" example:"driver@parkmate.app"`
}

// PasswordResetConfirmRequest redeems a reset token.
type PasswordResetConfirmRequest struct {
	Token              string `json:"token" binding:"required"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// GoogleTokenRequest carries an ID token obtained by the client from Google.
type GoogleTokenRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}
