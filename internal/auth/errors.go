package auth

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is the umbrella for every reason a request cannot be bound
// to an identity. Use errors.Is to test for it.
var ErrUnauthenticated = errors.New("unauthenticated")

var (
	ErrMissingCredentials = fmt.Errorf("%w: authorization header missing", ErrUnauthenticated)
	ErrTokenExpired       = fmt.Errorf("%w: token expired", ErrUnauthenticated)
	ErrTokenMalformed     = fmt.Errorf("%w: token malformed", ErrUnauthenticated)
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrUnauthenticated)
)

// ErrAuthenticationFailed reports a rejected username/password pair. It does
// not say whether the user exists.
var ErrAuthenticationFailed = errors.New("authentication failed")

// ErrPasswordEncoding is returned when a password cannot be hashed.
var ErrPasswordEncoding = errors.New("password cannot be encoded")
