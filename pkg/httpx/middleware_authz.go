package httpx

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/forum/pkg/jwtx"
	"github.com/aussiebroadwan/forum/pkg/metrics"
	"github.com/aussiebroadwan/forum/pkg/slogx"
)

// errNoIdentity is returned when Authorize runs without Authenticate in front
// of it. That is a wiring mistake, so it surfaces as a 500.
var errNoIdentity = errors.New("httpx: authorize stage used without authenticate")

// Authorize is the second gate stage. It lets the request through only when
// the identity attached by Authenticate carries the admin flag.
//
// The flag is whatever the token said at issuance; it is not re-read from
// the account.
func Authorize() Stage {
	return func(r *http.Request, next func(*http.Request)) error {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			return errNoIdentity
		}

		if !id.IsAdmin {
			metrics.AuthRejections.WithLabelValues("authorize", "not_admin").Inc()
			slogx.FromContext(r.Context()).Info("admin route refused", "path", r.URL.Path)
			return ErrInsufficientPrivilege
		}

		next(r)
		return nil
	}
}

// RequireAdmin is Gate(Authenticate(v), Authorize()).
func RequireAdmin(v jwtx.Verifier) Middleware {
	return Gate(Authenticate(v), Authorize())
}
