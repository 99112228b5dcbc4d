package dto

import (
	"errors"
	"time"
	"unicode/utf8"
)

const (
	minFieldLength = 1
	maxFieldLength = 255
)

// TokenRequest is the login payload.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate enforces the 1..255 character bounds on both fields.
func (r TokenRequest) Validate() error {
	if !lengthWithin(r.Username) {
		return errors.New("username must be 1-255 characters")
	}
	if !lengthWithin(r.Password) {
		return errors.New("password must be 1-255 characters")
	}
	return nil
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ProfileResponse describes the authenticated caller.
type ProfileResponse struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func lengthWithin(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= minFieldLength && n <= maxFieldLength
}
