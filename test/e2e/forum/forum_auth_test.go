package forum_test

import (
	"testing"

	"github.com/aussiebroadwan/forum/pkg/forumsdk"
	"github.com/stretchr/testify/require"
)

// TestRegisterLoginValidate walks an account from registration to a
// validated token.
func TestRegisterLoginValidate(t *testing.T) {
	client := setupForumContainer(t)

	reg, err := client.Register(t.Context(), forumsdk.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.Equal(t, "alice", reg.Username)

	_, err = client.Register(t.Context(), forumsdk.RegisterRequest{
		Username: "alice",
		Email:    "alice2@example.com",
		Password: "secret123",
	})
	require.ErrorIs(t, err, forumsdk.Validation("Username already taken"))

	session, err := client.Login(t.Context(), "alice", "secret123")
	require.NoError(t, err)
	require.Equal(t, reg.UserID, session.UserID())
	require.False(t, session.IsAdmin())

	id, err := session.Validate(t.Context())
	require.NoError(t, err)
	require.Equal(t, forumsdk.IdentityResponse{UserID: reg.UserID, Username: "alice"}, *id)
}

// TestInvalidCredentials verifies wrong passwords and unknown users are
// rejected identically.
func TestInvalidCredentials(t *testing.T) {
	client := setupForumContainer(t)
	registerAndLogin(t, client, "bob")

	_, err := client.Login(t.Context(), "bob", "wrong-password")
	require.ErrorIs(t, err, forumsdk.ErrInvalidLogin)

	_, err = client.Login(t.Context(), "nobody", "password1")
	require.ErrorIs(t, err, forumsdk.ErrInvalidLogin)
}

// TestInvalidToken verifies a forged token is refused by the gate.
func TestInvalidToken(t *testing.T) {
	client := setupForumContainer(t)

	session := client.NewSessionFromToken("eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ4In0.Zm9yZ2Vk")
	_, err := session.Validate(t.Context())
	require.ErrorIs(t, err, forumsdk.ErrUnauthorized)

	_, err = session.Me(t.Context())
	require.ErrorIs(t, err, forumsdk.ErrUnauthorized)
}
