// Package password wraps bcrypt hashing and verification of login
// credentials. Hashes are salted per call, so two hashes of the same
// plaintext differ while both verify.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/musitech/crm-api/internal/core/domain"
)

// Hash returns a salted one-way digest of plaintext.
func Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// Verify reports whether plaintext matches the stored digest. The comparison
// is constant-time inside bcrypt. A digest that is not a valid bcrypt hash
// signals a corrupt record, not a bad credential.
func Verify(plaintext, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", domain.ErrCorruptHash, err)
	}
}
