package session

import "errors"

var (
	// ErrInvalidToken is returned when a token fails decryption, is
	// structurally malformed, or is missing required claims. It never
	// reveals which check failed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when a token decrypts correctly but its
	// embedded expiry is in the past. Kept distinct from ErrInvalidToken so
	// callers can tell a stale credential from a forged one.
	ErrTokenExpired = errors.New("token expired")

	// ErrSessionNotFound is returned by stores when no row matches.
	// Service lookups absorb it into a nil result; only storage failures
	// propagate to callers.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidInput is returned when a caller supplies an unusable
	// argument, such as a principal without an identifier.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfig is returned for invalid configuration.
	ErrConfig = errors.New("invalid config")
)
