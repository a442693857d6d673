package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns plaintext passwords into salted one-way hashes and
// checks candidates against them.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, hash string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt. Every Hash call draws a
// fresh salt, and the digest comparison in Verify is constant-time.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, or bcrypt.DefaultCost when cost
// is outside bcrypt's accepted range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Cost() int { return h.cost }

// Hash returns the bcrypt encoding of plaintext. Passwords longer than 72
// bytes are rejected with bcrypt.ErrPasswordTooLong. If ctx is cancelled
// while the hash is being computed the result is dropped and ctx.Err()
// returned.
func (h *BcryptHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	type result struct {
		hash []byte
		err  error
	}

	out, err := runWithContext(ctx, func() result {
		b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
		return result{hash: b, err: err}
	})
	if err != nil {
		return "", err
	}
	if out.err != nil {
		return "", fmt.Errorf("hash password: %w", out.err)
	}
	return string(out.hash), nil
}

// Verify reports whether plaintext matches hash. A malformed hash, a
// mismatch and a cancelled ctx all yield false.
func (h *BcryptHasher) Verify(ctx context.Context, plaintext, hash string) bool {
	ok, err := runWithContext(ctx, func() bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
	})
	return err == nil && ok
}

// runWithContext runs the CPU-bound fn on its own goroutine so the caller can
// walk away when ctx is done. fn has no side effects, so abandoning it leaves
// nothing behind.
func runWithContext[T any](ctx context.Context, fn func() T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	done := make(chan T, 1)
	go func() { done <- fn() }()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case v := <-done:
		return v, nil
	}
}
