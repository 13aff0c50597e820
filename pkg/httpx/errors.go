package httpx

import (
	"fmt"
	"net/http"
)

// Error is a rejection written by middleware in this package. It renders as
// {"error": Code, "error_description": Description}.
type Error struct {
	Status      int
	Code        string
	Description string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Write renders the error. 401s also carry an RFC 6750 challenge so bearer
// clients know to re-authenticate.
func (e *Error) Write(w http.ResponseWriter) {
	if e.Status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	}
	WriteJSON(w, e.Status, map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrMissingCredentials means no Authorization header was sent.
	ErrMissingCredentials = &Error{
		Status:      http.StatusUnauthorized,
		Code:        "unauthorized",
		Description: "Missing Authorization header",
	}

	// ErrMalformedCredentials means the header is not a Bearer credential.
	ErrMalformedCredentials = &Error{
		Status:      http.StatusUnauthorized,
		Code:        "unauthorized",
		Description: "Invalid token format",
	}

	// ErrInvalidCredentials covers every token verification failure. The
	// underlying reason is logged, never returned.
	ErrInvalidCredentials = &Error{
		Status:      http.StatusUnauthorized,
		Code:        "unauthorized",
		Description: "Invalid token",
	}

	// ErrInsufficientPrivilege means the caller is authenticated but not an
	// admin.
	ErrInsufficientPrivilege = &Error{
		Status:      http.StatusForbidden,
		Code:        "forbidden",
		Description: "Admin privileges required",
	}

	// ErrRateLimited is written by RateLimitMiddleware.
	ErrRateLimited = &Error{
		Status:      http.StatusTooManyRequests,
		Code:        "rate_limit_exceeded",
		Description: "Too many requests. Please try again later.",
	}

	errGateMisconfigured = &Error{
		Status:      http.StatusInternalServerError,
		Code:        "server_error",
		Description: "Internal server error",
	}
)
