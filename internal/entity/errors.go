package entity

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrEmailTaken is returned when an account with the same email already exists
	// in the target collection.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrInvalidCredentials is the single outcome for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountNotConfirmed is returned when a pending learner/parent tries to log in.
	ErrAccountNotConfirmed = errors.New("account is not confirmed, please check your email")
	// ErrInvalidOrExpiredToken is returned when no pending account matches a confirmation token.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired confirmation token")
	// ErrUnauthorized is returned when a request carries no usable session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the caller may not act on the target account.
	ErrForbidden = errors.New("action forbidden")
	// ErrAccountNotFound is returned when the requested account does not exist.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidInput marks malformed or incomplete requests.
	ErrInvalidInput = errors.New("invalid input data")
)

// ValidationError carries per-field messages for a rejected request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, field+" "+msg)
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
