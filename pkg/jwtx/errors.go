package jwtx

import "errors"

// Verifier validates a token and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	// ErrMissingSecret is returned by NewAuthority when no signing secret
	// was configured. Callers should treat it as a startup failure.
	ErrMissingSecret = errors.New("jwtx: signing secret not configured")

	// ErrSigning means the claims could not be encoded or signed. Never
	// caused by caller input.
	ErrSigning = errors.New("jwtx: token signing failed")

	ErrMalformed      = errors.New("jwtx: malformed token")
	ErrInvalidSig     = errors.New("jwtx: invalid signature")
	ErrExpired        = errors.New("jwtx: token expired")
	ErrNotYetValid    = errors.New("jwtx: token not yet valid")
	ErrInvalidSubject = errors.New("jwtx: invalid subject")
)

// Reason maps a verification error to a short, stable label suitable for
// logs and metric labels. It returns "unknown" for errors this package
// did not produce.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrInvalidSig):
		return "invalid_signature"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrNotYetValid):
		return "not_yet_valid"
	case errors.Is(err, ErrInvalidSubject):
		return "invalid_subject"
	default:
		return "unknown"
	}
}
