package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the lifetime of every issued token unless overridden
// with WithTTL.
const DefaultTokenTTL = 24 * time.Hour

// Identity is who a token speaks for. It is what callers hand to Issue and
// what request handlers read back once a token has been verified.
type Identity struct {
	SubjectID   uuid.UUID
	DisplayName string
	IsAdmin     bool
}

// Claims are the signed token payload. Only sub, exp and iat are used from
// the registered set; the rest stay empty and are omitted on the wire.
//
// Username and Admin are copies taken at issuance time. Changing the account
// afterwards does not touch tokens already handed out.
type Claims struct {
	jwt.RegisteredClaims

	// Username for the authenticated user
	Username string `json:"username"`

	// Admin is the privilege flag
	Admin bool `json:"admin"`

	// SubjectID is Subject parsed as an account id. Set by Verify.
	SubjectID uuid.UUID `json:"-"`
}

// NewClaims builds claims for id valid from now until now+ttl. Timestamps are
// truncated to whole seconds so exp-iat is exactly ttl on the wire.
func NewClaims(id Identity, ttl time.Duration, now time.Time) Claims {
	now = now.Truncate(time.Second)
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.SubjectID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username:  id.DisplayName,
		Admin:     id.IsAdmin,
		SubjectID: id.SubjectID,
	}
}

// Identity returns the trusted projection of the claims.
func (c Claims) Identity() Identity {
	return Identity{
		SubjectID:   c.SubjectID,
		DisplayName: c.Username,
		IsAdmin:     c.Admin,
	}
}
