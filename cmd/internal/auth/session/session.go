package session

import (
	"context"
	"time"

	"gatekey/cmd/internal/listing"
)

// Session is one issued credential for a (user, client) pair.
//
// PublicKey travels inside the token; PrivateKey never leaves the server
// and is re-derived from PublicKey during validation. ExpiresAt is nil for
// sessions that never expire.
type Session struct {
	ID        string
	UserID    string
	ClientID  string
	PublicKey string
	// PrivateKey is the server-side derivation of PublicKey. It is stored
	// alongside the session and matched exactly on lookup.
	PrivateKey string

	CreatedAt time.Time
	ExpiresAt *time.Time
}

// Expired reports whether the session's own expiry has passed at now.
// Sessions without an expiry never expire.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}

// Match is the exact lookup predicate for token validation. All four
// fields must match a stored row; a single stale field means the session
// has been revoked or superseded.
type Match struct {
	UserID     string
	ClientID   string
	PublicKey  string
	PrivateKey string
}

// Store abstracts session persistence.
//
// Implementations return plain Session values; callers own what they get
// back and mutations never leak into the store.
type Store interface {
	// Save persists a new session row.
	Save(ctx context.Context, s Session) error

	// FindOne returns the single session matching all fields of m, or
	// ErrSessionNotFound.
	FindOne(ctx context.Context, m Match) (Session, error)

	// FindByUser returns the user's sessions shaped by opts.
	FindByUser(ctx context.Context, userID string, opts listing.Options) ([]Session, error)

	// DeleteOne removes the session with the given id. It reports whether
	// a row was actually deleted; deleting an absent id is not an error.
	DeleteOne(ctx context.Context, id string) (bool, error)

	// DeleteAllForUser removes every session owned by userID and returns
	// the number of rows deleted.
	DeleteAllForUser(ctx context.Context, userID string) (int64, error)
}
