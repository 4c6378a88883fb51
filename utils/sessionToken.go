package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
)

const (
	// SessionExpiry bounds how long a portal session cookie stays valid.
	SessionExpiry = 24 * time.Hour
)

// SessionClaims is the payload encrypted into the session cookie. Only the
// session identifier travels to the browser; everything else lives in the
// session record.
type SessionClaims struct {
	SessionID string    `json:"sessionId"`
	Expiry    time.Time `json:"expiry"`
}

// SessionTokener issues and verifies the PASETO tokens used as portal
// session cookies.
type SessionTokener struct {
	symmetricKey []byte
}

// NewSessionTokener validates the symmetric key and returns a tokener.
// The key must be exactly 32 bytes.
func NewSessionTokener(key string) (*SessionTokener, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("session key must be 32 bytes long, got %d", len(key))
	}
	return &SessionTokener{symmetricKey: []byte(key)}, nil
}

// Issue encrypts a session identifier into a cookie token.
func (t *SessionTokener) Issue(sessionID string) (string, error) {
	claims := SessionClaims{
		SessionID: sessionID,
		Expiry:    time.Now().Add(SessionExpiry),
	}

	token, err := paseto.NewV2().Encrypt(t.symmetricKey, claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return token, nil
}

// Verify decrypts a cookie token and checks its expiry.
func (t *SessionTokener) Verify(tokenString string) (*SessionClaims, error) {
	var claims SessionClaims
	if err := paseto.NewV2().Decrypt(tokenString, t.symmetricKey, &claims, nil); err != nil {
		return nil, fmt.Errorf("failed to decrypt session token: %w", err)
	}

	if time.Now().After(claims.Expiry) {
		return nil, errors.New("session token expired")
	}
	return &claims, nil
}
