package security

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 12

// bcrypt only reads the first 72 bytes; newer x/crypto rejects longer input
// instead of truncating it.
const maxPasswordBytes = 72

// Hasher hashes and verifies passwords with bcrypt. The salt is generated per
// call and embedded in the output. Callers must never log plaintext passwords.
type Hasher struct {
	Cost int

	// dummy is compared against when an account does not exist, so a missing
	// account costs the same as a wrong password.
	dummyOnce sync.Once
	dummy     []byte
}

// NewHasher returns a Hasher with cost clamped to bcrypt's bounds.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}

	return &Hasher{Cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(truncate(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether password matches hashed. A malformed hash is a
// mismatch, never an error.
func (h *Hasher) Verify(password, hashed string) bool {
	if hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), truncate(password)) == nil
}

// VerifyDummy burns one comparison at the configured cost and always reports false.
func (h *Hasher) VerifyDummy(password string) bool {
	h.dummyOnce.Do(func() {
		h.dummy, _ = bcrypt.GenerateFromPassword([]byte("bookmylook-timing-equalizer"), h.Cost)
	})
	if h.dummy != nil {
		_ = bcrypt.CompareHashAndPassword(h.dummy, truncate(password))
	}
	return false
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
