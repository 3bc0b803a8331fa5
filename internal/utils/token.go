package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewPlainToken generates an opaque bearer token. Two v4 UUIDs give 64 hex
// chars of CSPRNG-backed randomness.
func NewPlainToken() string {
	a := strings.ReplaceAll(uuid.NewString(), "-", "")
	b := strings.ReplaceAll(uuid.NewString(), "-", "")
	return a + b
}

// HashToken returns the hex SHA-256 digest persisted in place of the plaintext.
func HashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
