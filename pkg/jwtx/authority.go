package jwtx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Authority issues and verifies HS256 tokens with a single shared secret.
//
// The secret is fixed for the lifetime of the Authority, so one value can be
// shared by every request goroutine without locking.
type Authority struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// Option configures an Authority.
type Option func(*Authority)

// WithTTL overrides DefaultTokenTTL. Tests use it to mint short-lived tokens.
func WithTTL(ttl time.Duration) Option {
	return func(a *Authority) {
		if ttl > 0 {
			a.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, mostly for tests that need to jump past expiry.
func WithClock(now func() time.Time) Option {
	return func(a *Authority) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAuthority returns an Authority signing with secret. The secret is copied.
func NewAuthority(secret []byte, opts ...Option) (*Authority, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}

	a := &Authority{
		secret: append([]byte(nil), secret...),
		ttl:    DefaultTokenTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(a.now),
	)

	return a, nil
}

// TTL reports how long issued tokens stay valid.
func (a *Authority) TTL() time.Duration { return a.ttl }

// Ready reports whether the authority can sign and verify. Used by /readyz.
func (a *Authority) Ready() bool { return a != nil && len(a.secret) > 0 }

// Issue signs a token for id, valid from now for the configured TTL.
func (a *Authority) Issue(id Identity) (string, error) {
	claims := NewClaims(id, a.ttl, a.now())

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return token, nil
}

// Verify checks token and returns its claims.
//
// Checks run in a fixed order: shape, then signature, then expiry, then
// subject. The signature is checked over the raw segments before anything in
// them is decoded, so any change to header or claims reports ErrInvalidSig.
func (a *Authority) Verify(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return Claims{}, ErrMalformed
	}

	sig, err := a.parser.DecodeSegment(parts[2])
	if err != nil {
		return Claims{}, fmt.Errorf("%w: signature encoding: %v", ErrMalformed, err)
	}

	// hmac.Equal under the hood, so the comparison is constant time.
	if err := jwt.SigningMethodHS256.Verify(parts[0]+"."+parts[1], sig, a.secret); err != nil {
		return Claims{}, ErrInvalidSig
	}

	var claims Claims
	if _, err := a.parser.ParseWithClaims(token, &claims, a.keyFunc); err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenUsedBeforeIssued), errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		default:
			return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	sub, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Claims{}, ErrInvalidSubject
	}
	claims.SubjectID = sub

	return claims, nil
}

func (a *Authority) keyFunc(*jwt.Token) (any, error) {
	return a.secret, nil
}
