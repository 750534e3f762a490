package server

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// IPHasher turns client addresses into stable, salted identifiers so raw
// IPs never reach the logs or the rate limiter keys.
type IPHasher struct {
	salt string
}

// NewIPHasher creates a hasher with a random per-process salt.
func NewIPHasher() (*IPHasher, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generate ip salt: %w", err)
	}
	return &IPHasher{salt: hex.EncodeToString(b)}, nil
}

// NewIPHasherWithSalt is used by tests that need predictable output.
func NewIPHasherWithSalt(salt string) *IPHasher {
	return &IPHasher{salt: salt}
}

// Hash returns the first 16 hex characters of sha256(ip + salt).
func (h *IPHasher) Hash(ip string) string {
	sum := sha256.Sum256([]byte(ip + h.salt))
	return hex.EncodeToString(sum[:])[:16]
}
