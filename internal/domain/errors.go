package domain

import "errors"

var (
	// ErrValidation indicates missing or malformed input; safe to surface.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateEmail indicates the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateProduct indicates a catalog entry with that name exists.
	ErrDuplicateProduct = errors.New("product already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized indicates a missing, expired or insufficient session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")
)
