package domain

import "time"

// Session is the credential set handed to a client after a successful sign-in.
type Session struct {
	User               *User
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}
