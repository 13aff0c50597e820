package cryptox

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Hasher bounds how many Argon2id derivations run at once. Each derivation
// holds ~19 MiB, so an unbounded burst of logins can exhaust memory and starve
// unrelated requests of CPU.
//
// Waiting for a slot honours ctx. Once a derivation has started it runs to
// completion; a cancelled caller simply discards the result.
type Hasher struct {
	sem *semaphore.Weighted
}

// NewHasher returns a Hasher allowing at most limit concurrent derivations.
// A non-positive limit defaults to runtime.NumCPU().
func NewHasher(limit int) *Hasher {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	return &Hasher{sem: semaphore.NewWeighted(int64(limit))}
}

// Hash is HashPassword gated by the concurrency limit.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	return HashPassword(password)
}

// Verify is VerifyPassword gated by the concurrency limit.
func (h *Hasher) Verify(ctx context.Context, password, encodedHash string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.sem.Release(1)

	return VerifyPassword(password, encodedHash)
}
