package keys

import "errors"

// Public, stable errors for callers.
var (
	ErrSecretTooShort = errors.New("key secret too short")
)
