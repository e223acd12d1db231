package auth

import (
	"errors"
	"time"

	"github.com/Goofygiraffe06/authpanel/internal/logging"
	"github.com/Goofygiraffe06/authpanel/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

var ErrKeyNotInitialized = errors.New("Ed25519 key not initialized")

// SessionClaims are carried by tokens issued after a successful submission.
type SessionClaims struct {
	Form string `json:"form"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies EdDSA session tokens.
type Issuer struct {
	key    *SigningKey
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer builds an Issuer around key.
func NewIssuer(key *SigningKey, issuer string, ttl time.Duration) *Issuer {
	return &Issuer{key: key, issuer: issuer, ttl: ttl, now: time.Now}
}

// Issue signs a token for subject. form is "login" or "signup".
func (i *Issuer) Issue(subject, form string) (string, error) {
	emailHash := utils.HashEmail(subject)

	if i.key == nil || i.key.PrivateKey == nil {
		logging.ErrorLog("Session token generation failed [%s]: key not initialized", emailHash)
		return "", ErrKeyNotInitialized
	}

	jti, err := GenerateNonce()
	if err != nil {
		return "", err
	}

	now := i.now()
	claims := SessionClaims{
		Form: form,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    i.issuer,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(i.key.PrivateKey)
	if err != nil {
		logging.ErrorLog("Session token signing failed [%s]: %v", emailHash, err)
		return "", err
	}

	logging.DebugLog("Session token generated [%s]", emailHash)
	return token, nil
}

// Verify parses tokenStr, accepting only EdDSA tokens from this issuer.
func (i *Issuer) Verify(tokenStr string) (*SessionClaims, error) {
	if i.key == nil || i.key.PublicKey == nil {
		return nil, ErrKeyNotInitialized
	}

	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodEd25519); !ok {
			logging.DebugLog("Token verification failed: unexpected signing method %T", token.Method)
			return nil, errors.New("unexpected signing method")
		}
		return i.key.PublicKey, nil
	},
		jwt.WithIssuer(i.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		logging.DebugLog("Token verification failed: %v", err)
		return nil, err
	}
	return claims, nil
}
