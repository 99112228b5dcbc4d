package domain

import "time"

// Identity is the minimal public view of an authenticated user. It lives only
// as long as the request that resolved it.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// TokenClaims is the payload carried by an issued access token.
type TokenClaims struct {
	SubjectID int64
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
