package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// PasswordHasher produces and verifies salted bcrypt digests. Hashing is
// deliberately expensive, so concurrent calls are capped by a semaphore to
// keep request dispatch responsive under load. Individual calls share no
// mutable state and are safe to run in parallel.
type PasswordHasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewPasswordHasher returns a hasher with the given bcrypt cost and a cap on
// concurrent hash/verify computations. Out-of-range values fall back to
// bcrypt.DefaultCost and a single worker respectively.
func NewPasswordHasher(cost int, maxConcurrent int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &PasswordHasher{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// Hash derives a salted digest from plaintext. A fresh random salt is
// generated per call, so identical inputs produce different digests.
// The only error paths are context cancellation while waiting for a worker
// slot and bcrypt internals failing, which does not happen for well-formed
// input.
func (h *PasswordHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. bcrypt re-derives the
// hash from the salt embedded in digest and compares without leaking the
// position of the first mismatching byte. A malformed digest yields
// (false, nil); the error is non-nil only when ctx is done before a worker
// slot frees up.
func (h *PasswordHasher) Verify(ctx context.Context, plaintext, digest string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		// malformed or truncated digest
		return false, nil
	}
	return true, nil
}
