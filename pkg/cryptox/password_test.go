package cryptox

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)

			// Verify PHC format
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"),
				"hash should be in PHC format")

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6, "PHC hash should have 6 parts")
			require.Equal(t, "", parts[0])
			require.Equal(t, "argon2id", parts[1])
			require.Equal(t, "v=19", parts[2])
			require.Equal(t, "m=19456,t=2,p=1", parts[3])
			require.NotEmpty(t, parts[4], "salt should not be empty")
			require.NotEmpty(t, parts[5], "hash should not be empty")

			// The plaintext must never appear in the encoding.
			if tt.password != "" {
				require.NotContains(t, hash, tt.password)
			}
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	password := "samepassword"

	hash1, err := HashPassword(password)
	require.NoError(t, err)

	hash2, err := HashPassword(password)
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")

	ok, err := VerifyPassword(password, hash1)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyPassword(password, hash2)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyPassword_Success(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)

			ok, err := VerifyPassword(tt.password, hash)
			require.NoError(t, err)
			require.True(t, ok)
		})
	}
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	tests := []struct {
		name          string
		wrongPassword string
	}{
		{"completely wrong", "wrong-password"},
		{"case difference", "Correct-Password"},
		{"extra space", "correct-password "},
		{"empty password", ""},
		{"similar password", "correct-passwor"},
		{"very long", strings.Repeat("x", 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A mismatch is an outcome, not an error.
			ok, err := VerifyPassword(tt.wrongPassword, hash)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	tests := []struct {
		name        string
		invalidHash string
	}{
		{"empty hash", ""},
		{"plaintext", "test-password"},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"zero memory", "$argon2id$v=19$m=0,t=2,p=1$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing version", "$argon2id$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := VerifyPassword("test-password", tt.invalidHash)
			require.ErrorIs(t, err, ErrCredentialHashing)
			require.False(t, ok)
		})
	}
}

func TestVerifyPassword_EmbeddedParameters(t *testing.T) {
	// Cost parameters come from the encoding, not the package constants.
	salt := "c29tZXNhbHRzb21lc2FsdA"
	p, err := parsePHC("$argon2id$v=19$m=8192,t=1,p=1$" + salt + "$aGFzaGhhc2hoYXNo")
	require.NoError(t, err)
	require.Equal(t, uint32(8192), p.memory)
	require.Equal(t, uint32(1), p.iterations)
	require.Equal(t, uint8(1), p.parallelism)
}

func TestHasher_BoundsConcurrency(t *testing.T) {
	h := NewHasher(2)
	ctx := context.Background()

	hash, err := h.Hash(ctx, "secret123")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 6 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := h.Verify(ctx, "secret123", hash)
			require.NoError(t, err)
			require.True(t, ok)
		}()
	}
	wg.Wait()
}

func TestHasher_CancelledWhileWaiting(t *testing.T) {
	h := NewHasher(1)

	// Occupy the only slot.
	require.NoError(t, h.sem.Acquire(context.Background(), 1))
	defer h.sem.Release(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Hash(ctx, "secret123")
	require.ErrorIs(t, err, context.Canceled)

	ok, err := h.Verify(ctx, "secret123", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA")
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, ok)
}

func TestPasswordWorkflow_EndToEnd(t *testing.T) {
	// 1. Hash for storage
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	// 2. Later, verify during login
	ok, err := VerifyPassword("secret123", hash)
	require.NoError(t, err)
	require.True(t, ok, "correct password should verify")

	// 3. Wrong password is a plain false
	ok, err = VerifyPassword("secret124", hash)
	require.NoError(t, err)
	require.False(t, ok, "wrong password should fail")
}
