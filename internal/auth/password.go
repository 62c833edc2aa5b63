package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Password length limits in bytes. bcrypt ignores everything past 72 bytes,
// so longer passwords are rejected instead of silently truncated.
const (
	MinPasswordBytes = 8
	MaxPasswordBytes = 72
)

// BcryptHasher hashes passwords with bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, or bcrypt.DefaultCost when
// cost is outside bcrypt's accepted range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches digest. A malformed digest is a
// mismatch.
func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// HashPassword hashes with bcrypt.DefaultCost.
func HashPassword(password string) (string, error) {
	return NewBcryptHasher(bcrypt.DefaultCost).Hash(password)
}

func CheckPassword(password, digest string) bool {
	return NewBcryptHasher(bcrypt.DefaultCost).Verify(password, digest)
}

// CheckPasswordPolicy enforces the 8 to 72 byte length window.
func CheckPasswordPolicy(password string) error {
	switch {
	case len(password) < MinPasswordBytes:
		return fmt.Errorf("%w: must be at least %d bytes", ErrPasswordPolicy, MinPasswordBytes)
	case len(password) > MaxPasswordBytes:
		return fmt.Errorf("%w: must be at most %d bytes", ErrPasswordPolicy, MaxPasswordBytes)
	}
	return nil
}
