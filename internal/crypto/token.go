package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

const confirmationTokenBytes = 32

// NewConfirmationToken returns a random secret for the confirmation link and the
// fingerprint to persist in its place.
func NewConfirmationToken() (secret, fingerprint string, err error) {
	buf := make([]byte, confirmationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate confirmation token: %w", err)
	}
	secret = base64.RawURLEncoding.EncodeToString(buf)
	return secret, HashToken(secret), nil
}

// HashToken derives the stored fingerprint of a secret.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// TokenMatches recomputes the fingerprint of secret and compares it to fingerprint.
func TokenMatches(secret, fingerprint string) bool {
	if secret == "" || fingerprint == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(HashToken(secret)), []byte(fingerprint)) == 1
}
