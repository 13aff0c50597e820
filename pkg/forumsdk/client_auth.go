package forumsdk

import (
	"context"
	"net/http"
)

// Register creates a new account. It does not log in.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", req)
	if err != nil {
		return nil, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}

	return &out, nil
}

// LoginRaw exchanges credentials for a token without wrapping it in a Session.
func (c *SDKClient) LoginRaw(ctx context.Context, username, password string) (*LoginResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return &out, nil
}

// Login exchanges credentials for an authenticated Session.
// A wrong username or password fails with ErrInvalidLogin.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*Session, error) {
	out, err := c.LoginRaw(ctx, username, password)
	if err != nil {
		return nil, err
	}

	return &Session{
		client:   c,
		token:    out.Token,
		userID:   out.UserID,
		username: out.Username,
		isAdmin:  out.IsAdmin,
	}, nil
}
