package forumsdk

import (
	"context"
	"net/http"
)

// Session is an authenticated view of the API bound to one bearer token.
type Session struct {
	client *SDKClient
	token  string

	// Populated by Login. Empty for sessions built from a bare token.
	userID   string
	username string
	isAdmin  bool
}

// Token returns the bearer token sent with every request.
func (s *Session) Token() string { return s.token }

// UserID returns the account id reported at login.
func (s *Session) UserID() string { return s.userID }

// Username returns the username reported at login.
func (s *Session) Username() string { return s.username }

// IsAdmin reports the admin flag captured in the token at login.
func (s *Session) IsAdmin() bool { return s.isAdmin }

// Client returns the SDKClient the session was created from, for public
// calls made alongside authenticated ones.
func (s *Session) Client() *SDKClient { return s.client }

// Validate asks the server to verify the token and returns the identity it
// carries.
func (s *Session) Validate(ctx context.Context) (*IdentityResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/auth/validate", nil, nil)
	if err != nil {
		return nil, err
	}

	var out IdentityResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}
