package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/forum/pkg/jwtx"
	"github.com/aussiebroadwan/forum/pkg/metrics"
	"github.com/aussiebroadwan/forum/pkg/slogx"
)

const bearerPrefix = "Bearer "

// Authenticate is the first gate stage. It verifies the bearer token in the
// Authorization header and attaches the resulting identity to the request
// context before calling next.
//
// Every token failure is answered with ErrInvalidCredentials. The specific
// reason only reaches the logs and the auth_rejections metric.
func Authenticate(v jwtx.Verifier) Stage {
	return func(r *http.Request, next func(*http.Request)) error {
		log := slogx.FromContext(r.Context())

		authz := r.Header.Get("Authorization")
		if authz == "" {
			metrics.AuthRejections.WithLabelValues("authenticate", "missing").Inc()
			return ErrMissingCredentials
		}
		if !strings.HasPrefix(authz, bearerPrefix) {
			metrics.AuthRejections.WithLabelValues("authenticate", "not_bearer").Inc()
			return ErrMalformedCredentials
		}

		claims, err := v.Verify(strings.TrimPrefix(authz, bearerPrefix))
		if err != nil {
			reason := jwtx.Reason(err)
			metrics.AuthRejections.WithLabelValues("authenticate", reason).Inc()
			log.Warn("token verification failed", "reason", reason)
			return ErrInvalidCredentials
		}

		id := claims.Identity()
		ctx := WithIdentity(r.Context(), id)
		ctx = slogx.WithContext(ctx, log.With("user_id", id.SubjectID.String()))
		next(r.WithContext(ctx))
		return nil
	}
}

// RequireAuth is Gate(Authenticate(v)), for routes that need a signed-in
// caller but no particular privilege.
func RequireAuth(v jwtx.Verifier) Middleware {
	return Gate(Authenticate(v))
}
