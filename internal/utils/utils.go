package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashEmail creates a consistent digest for logging without exposing PII.
// Case and surrounding whitespace do not change the digest.
func HashEmail(email string) string {
	hash := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(hash[:])[:12]
}

// HashName creates a short digest of a display name for logging.
func HashName(name string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(name)))
	return hex.EncodeToString(hash[:])[:8]
}
