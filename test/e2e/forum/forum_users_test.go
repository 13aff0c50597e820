package forum_test

import (
	"testing"

	"github.com/aussiebroadwan/forum/pkg/forumsdk"
	"github.com/stretchr/testify/require"
)

// TestProfileLifecycle covers reading, updating and viewing profiles.
func TestProfileLifecycle(t *testing.T) {
	client := setupForumContainer(t)
	carol := registerAndLogin(t, client, "carol")
	dave := registerAndLogin(t, client, "dave")

	me, err := carol.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, "carol@example.com", me.Email)

	bio := "Hello from carol"
	updated, err := carol.UpdateMe(t.Context(), forumsdk.UpdateUserRequest{Bio: &bio})
	require.NoError(t, err)
	require.Equal(t, bio, *updated.Bio)

	seen, err := dave.GetUser(t.Context(), me.ID)
	require.NoError(t, err)
	require.Equal(t, "carol", seen.Username)
	require.Empty(t, seen.Email)
}

// TestChangePassword verifies the new password replaces the old one.
func TestChangePassword(t *testing.T) {
	client := setupForumContainer(t)
	erin := registerAndLogin(t, client, "erin")

	err := erin.ChangePassword(t.Context(), "not-my-password", "password2")
	require.ErrorIs(t, err, forumsdk.ErrCurrentPasswordIncorrect)

	require.NoError(t, erin.ChangePassword(t.Context(), "password1", "password2"))

	_, err = client.Login(t.Context(), "erin", "password1")
	require.ErrorIs(t, err, forumsdk.ErrInvalidLogin)

	_, err = client.Login(t.Context(), "erin", "password2")
	require.NoError(t, err)
}
