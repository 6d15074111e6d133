package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores input past 72 bytes; longer passwords are rejected instead of silently truncated.
const maxPasswordBytes = 72

var compareHash = bcrypt.CompareHashAndPassword

type PasswordHasher struct {
	cost      int
	dummyHash []byte
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("carspot-dummy-password"), cost)
	if err != nil {
		dummy = nil
	}
	return &PasswordHasher{cost: cost, dummyHash: dummy}
}

// Hash returns a salted bcrypt digest. Two calls with the same input differ.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" || len(plaintext) > maxPasswordBytes {
		return "", fmt.Errorf("%w: password length", ErrInvalidInput)
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A malformed or empty digest is a mismatch
// and still costs one full comparison.
func (h *PasswordHasher) Verify(plaintext, digest string) bool {
	err := compareHash([]byte(digest), []byte(plaintext))
	if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		h.Burn(plaintext)
	}
	return err == nil
}

// Burn spends the same work as a real comparison. Used when there is no usable digest
// so that unknown accounts and wrong passwords take comparable time.
func (h *PasswordHasher) Burn(plaintext string) {
	if h.dummyHash == nil {
		return
	}
	_ = compareHash(h.dummyHash, []byte(plaintext))
}
