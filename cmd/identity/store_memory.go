package identity

import (
	"context"
	"strings"
	"sync"
)

// MemoryDirectory is an in-memory Directory for dev mode and tests.
type MemoryDirectory struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryDirectory creates an empty in-memory directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{users: make(map[string]User)}
}

// Put stores or replaces a user record.
func (d *MemoryDirectory) Put(u User) error {
	if strings.TrimSpace(u.ID) == "" {
		return ErrInvalidInput
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[u.ID] = u
	return nil
}

// GetByID returns the user with the given id, or ErrNotFound.
func (d *MemoryDirectory) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return User{}, ErrInvalidInput
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.users[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}
