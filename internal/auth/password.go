package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used for new password hashes.
const DefaultBcryptCost = 10

// PasswordHasher hashes and checks passwords with bcrypt.
type PasswordHasher struct {
	cost      int
	dummyHash []byte
}

// NewPasswordHasher creates a hasher with the given cost, clamped to bcrypt's range.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	// Compared against when the account does not exist, so a miss costs the same as a hit.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("edu2job-timing-equalizer"), cost)
	return &PasswordHasher{cost: cost, dummyHash: dummy}
}

// Hash returns a salted bcrypt hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. bcrypt compares in constant time.
func (h *PasswordHasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// VerifyDummy burns one comparison against a throwaway hash.
func (h *PasswordHasher) VerifyDummy(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
}

// Cost returns the configured work factor.
func (h *PasswordHasher) Cost() int {
	return h.cost
}
