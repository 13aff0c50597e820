package forumsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/forum/pkg/httpx"
)

// Error categories carried in the "error" field of every rejection.
const (
	ErrorCodeUnauthorized      = "unauthorized"
	ErrorCodeForbidden         = "forbidden"
	ErrorCodeBadRequest        = "bad_request"
	ErrorCodeValidation        = "validation_error"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeServerError       = "server_error"
	ErrorCodeRateLimitExceeded = "rate_limit_exceeded"
)

// APIError is a structured error response. It implements the error
// interface and is used both by the server (to write HTTP responses) and by
// the SDK client (to represent errors).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the error category (e.g., "not_found", "validation_error")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

// Is lets errors.Is match on status and category, so a parsed client
// error matches the predefined value it was written from. A target with an
// empty Description matches any description.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	if e.StatusCode != t.StatusCode || e.Code != t.Code {
		return false
	}
	return t.Description == "" || e.Description == t.Description
}

// NewAPIError creates a new APIError.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// Validation returns a 400 validation_error with the given message.
func Validation(description string) *APIError {
	return NewAPIError(http.StatusBadRequest, ErrorCodeValidation, description)
}

// NotFound returns a 404 not_found with the given message.
func NotFound(description string) *APIError {
	return NewAPIError(http.StatusNotFound, ErrorCodeNotFound, description)
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrInvalidLogin is the single answer for an unknown user, a wrong
	// password, or a disabled account.
	ErrInvalidLogin = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "Invalid username or password",
	}

	// ErrCurrentPasswordIncorrect is returned by change-password.
	ErrCurrentPasswordIncorrect = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "Current password is incorrect",
	}

	// ErrInvalidBody is returned when the JSON body cannot be decoded.
	ErrInvalidBody = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeBadRequest,
		Description: "Invalid request body",
	}

	// ErrServerError hides any internal failure from the caller.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "Internal server error",
	}

	// ErrUnauthorized is the generic client-side match for any 401.
	ErrUnauthorized = &APIError{StatusCode: http.StatusUnauthorized, Code: ErrorCodeUnauthorized}

	// ErrForbidden is the generic client-side match for any 403.
	ErrForbidden = &APIError{StatusCode: http.StatusForbidden, Code: ErrorCodeForbidden}
)

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns a non-2xx response into an *APIError.
// Returns nil if the response indicates success (2xx status code).
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// Fallback: create generic error from status code
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
