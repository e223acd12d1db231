package auth

import (
	"crypto/ed25519"
	"crypto/rand"
	"time"

	"github.com/Goofygiraffe06/authpanel/internal/logging"
)

// SigningKey signs session tokens. It lives for the process only, so tokens
// do not survive a restart.
type SigningKey struct {
	PrivateKey ed25519.PrivateKey
	PublicKey  ed25519.PublicKey
}

// NewSigningKey generates a fresh Ed25519 key pair.
func NewSigningKey() (*SigningKey, error) {
	start := time.Now()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		logging.ErrorLog("Ed25519 key generation failed: %v", err)
		return nil, err
	}

	logging.InfoLog("Ed25519 key generation success %v", time.Since(start))
	return &SigningKey{PrivateKey: priv, PublicKey: pub}, nil
}
