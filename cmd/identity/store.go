package identity

import "context"

// Directory is the read-only user lookup boundary.
type Directory interface {
	// GetByID returns the user with the given id, or ErrNotFound.
	GetByID(ctx context.Context, userID string) (User, error)
}
