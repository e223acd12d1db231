package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateNonce returns a 16-byte hex-encoded random id.
func GenerateNonce() (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("crypto/rand failed: %w", err)
	}
	return hex.EncodeToString(nonce), nil
}
