// Package hash provides the one-way password transform used for storing
// and comparing credentials.
package hash

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// Iterations follows the OWASP PBKDF2-SHA256 recommendation.
	Iterations = 210_000
	KeyLength  = 32
)

// PasswordHasher is a deterministic one-way transform: the same plaintext
// always yields the same digest, so stored credentials compare by string
// equality and the store can look up name+digest in one query.
type PasswordHasher interface {
	Hash(plaintext string) string
}

// PBKDF2Hasher hashes with PBKDF2-SHA256 over an application-wide salt.
// The shared salt is what makes the digest deterministic; per-password
// salting (bcrypt et al.) would break hash-equality comparison.
type PBKDF2Hasher struct {
	salt []byte
}

// NewPBKDF2Hasher builds a hasher from the configured application salt.
func NewPBKDF2Hasher(salt string) *PBKDF2Hasher {
	return &PBKDF2Hasher{salt: []byte(salt)}
}

// Hash returns the hex-encoded digest of plaintext.
func (h *PBKDF2Hasher) Hash(plaintext string) string {
	key := pbkdf2.Key([]byte(plaintext), h.salt, Iterations, KeyLength, sha256.New)
	return hex.EncodeToString(key)
}
