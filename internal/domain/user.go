package domain

import "time"

// User is a stored account able to obtain access tokens.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity returns the public projection of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username}
}
