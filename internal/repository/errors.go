package repository

import "errors"

var (
	ErrDuplicateEmail = errors.New("email already exists")
	ErrNotFound       = errors.New("record not found")
	ErrInvalidID      = errors.New("invalid id")
)
