package crypto

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned when a plaintext does not match the stored hash.
var ErrPasswordMismatch = errors.New("password does not match")

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword verifies password against a hash produced by HashPassword.
func CheckPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return fmt.Errorf("check password: %w", err)
}

// unknownAccountHash matches no password a caller can send.
var unknownAccountHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("tutoring-service/unknown-account"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("crypto: build unknown-account hash: %v", err))
	}
	return hash
})

// CheckPasswordForUnknownAccount performs the same bcrypt work as CheckPassword
// and always reports ErrPasswordMismatch. Login paths call it when no account
// matches, so a miss costs as much as a wrong password.
func CheckPasswordForUnknownAccount(password string) error {
	_ = bcrypt.CompareHashAndPassword(unknownAccountHash(), []byte(password))
	return ErrPasswordMismatch
}
