package client

import "errors"

var (
	// ErrNotFound is returned by stores when no client matches.
	ErrNotFound = errors.New("client not found")

	// ErrConflict is returned when an id or name is already taken in the
	// shared id/name namespace.
	ErrConflict = errors.New("client id or name already taken")

	// ErrInvalidInput is returned for blank or malformed input.
	ErrInvalidInput = errors.New("invalid input")
)
