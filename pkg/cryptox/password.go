package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Configuration for Argon2id hashing.
const (
	memory      = 19 * 1024 // Memory usage in KiB (19 MiB)
	iterations  = 2         // Iteration count
	parallelism = 1         // Number of threads
	keyLength   = 32        // Length of the generated hash
	saltLength  = 16        // Length of the salt

	argon2Version = "v=19"
)

// ErrCredentialHashing reports a failure of the hashing primitive or a stored
// hash that cannot be parsed. It always points at the server, never at the
// caller's password.
var ErrCredentialHashing = errors.New("cryptox: credential hashing failed")

// HashPassword generates a PHC-format Argon2id hash string including salt and parameters.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: read salt: %v", ErrCredentialHashing, err)
	}

	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, keyLength)
	if len(hash) != keyLength {
		return "", fmt.Errorf("%w: short derived key", ErrCredentialHashing)
	}

	return fmt.Sprintf(
		"$argon2id$%s$m=%d,t=%d,p=%d$%s$%s",
		argon2Version,
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword compares a plaintext password against a PHC-style Argon2id hash.
//
// A mismatch is reported as (false, nil). An error is only returned when the
// encoded hash is corrupt, and it always wraps ErrCredentialHashing.
func VerifyPassword(password, encodedHash string) (bool, error) {
	p, err := parsePHC(encodedHash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey(
		[]byte(password),
		p.salt,
		p.iterations,
		p.memory,
		p.parallelism,
		uint32(len(p.hash)), // #nosec G115 - bounded by the decoded hash length
	)

	return subtle.ConstantTimeCompare(computed, p.hash) == 1, nil
}

type phcParams struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	salt        []byte
	hash        []byte
}

// parsePHC splits $argon2id$v=19$m=X,t=Y,p=Z$salt$hash into its parts.
func parsePHC(encodedHash string) (phcParams, error) {
	parts := strings.Split(encodedHash, "$")

	// ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	if len(parts) != 6 || parts[0] != "" {
		return phcParams{}, fmt.Errorf("%w: expected 6 parts", ErrCredentialHashing)
	}
	if parts[1] != "argon2id" {
		return phcParams{}, fmt.Errorf("%w: not argon2id", ErrCredentialHashing)
	}
	if parts[2] != argon2Version {
		return phcParams{}, fmt.Errorf("%w: unsupported version %q", ErrCredentialHashing, parts[2])
	}

	var p phcParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return phcParams{}, fmt.Errorf("%w: parse parameters: %v", ErrCredentialHashing, err)
	}
	if p.memory == 0 || p.iterations == 0 || p.parallelism == 0 {
		return phcParams{}, fmt.Errorf("%w: zero cost parameter", ErrCredentialHashing)
	}

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(p.salt) == 0 {
		return phcParams{}, fmt.Errorf("%w: decode salt", ErrCredentialHashing)
	}
	if p.hash, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(p.hash) == 0 {
		return phcParams{}, fmt.Errorf("%w: decode hash", ErrCredentialHashing)
	}

	return p, nil
}
