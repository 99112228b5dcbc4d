package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/asset-service/internal/domain"
)

// TokenCodec issues and validates signed access tokens. The signing algorithm
// is fixed at construction; tokens naming any other algorithm are rejected.
type TokenCodec struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// CodecOption customizes a TokenCodec.
type CodecOption func(*TokenCodec)

// WithClock overrides the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(tc *TokenCodec) {
		tc.now = now
	}
}

// Claims describes the JWT payload.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewTokenCodec builds a codec signing with the HMAC algorithm alg.
func NewTokenCodec(secret []byte, alg string, ttl time.Duration, opts ...CodecOption) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", alg)
	}

	tc := &TokenCodec{secret: secret, method: method, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(tc)
	}
	// Expiry is checked by Decode after the signature so that a tampered token
	// is never reported as merely expired.
	tc.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	return tc, nil
}

// TTL returns the lifetime of issued tokens.
func (tc *TokenCodec) TTL() time.Duration {
	return tc.ttl
}

// Encode builds and signs a token for the subject.
func (tc *TokenCodec) Encode(subjectID int64, username string) (string, time.Time, error) {
	issuedAt := tc.now()
	expiresAt := issuedAt.Add(tc.ttl)
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	signed, err := jwt.NewWithClaims(tc.method, claims).SignedString(tc.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Decode verifies the token signature and expiry and returns its claims.
// It fails with ErrTokenExpired or ErrTokenMalformed.
func (tc *TokenCodec) Decode(tokenStr string) (*domain.TokenClaims, error) {
	claims := &Claims{}
	parsed, err := tc.parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return tc.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	if !parsed.Valid {
		return nil, ErrTokenMalformed
	}

	if claims.Subject == "" || claims.Username == "" || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing required claims", ErrTokenMalformed)
	}
	subjectID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not an id", ErrTokenMalformed)
	}

	expiresAt := claims.ExpiresAt.Time
	if !tc.now().Before(expiresAt) {
		return nil, ErrTokenExpired
	}

	out := &domain.TokenClaims{
		SubjectID: subjectID,
		Username:  claims.Username,
		ExpiresAt: expiresAt,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
