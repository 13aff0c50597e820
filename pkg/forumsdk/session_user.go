package forumsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Me returns the caller's own profile, email included.
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/users/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdateMe changes the caller's profile fields. Nil fields are left alone.
func (s *Session) UpdateMe(ctx context.Context, req UpdateUserRequest) (*UserResponse, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPut, "/api/users/me", req)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// ChangePassword replaces the caller's password. Existing tokens stay valid
// until they expire.
func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/api/users/change-password", ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	})
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// GetUser returns another account's public profile. Email is always blank.
func (s *Session) GetUser(ctx context.Context, id string) (*UserResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}
