package session

import (
	"context"
	"sort"
	"sync"

	"gatekey/cmd/internal/listing"
)

// MemoryStore is an in-memory Store for dev mode and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

// Save persists a new session.
func (s *MemoryStore) Save(ctx context.Context, sess Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := requireFields(sess); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

// FindOne returns the session matching all fields of m.
func (s *MemoryStore) FindOne(ctx context.Context, m Match) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sess := range s.sessions {
		if sess.UserID == m.UserID && sess.ClientID == m.ClientID &&
			sess.PublicKey == m.PublicKey && sess.PrivateKey == m.PrivateKey {
			return sess, nil
		}
	}
	return Session{}, ErrSessionNotFound
}

// FindByUser returns the user's sessions shaped by opts.
func (s *MemoryStore) FindByUser(ctx context.Context, userID string, opts listing.Options) ([]Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	var out []Session
	for _, sess := range s.sessions {
		if sess.UserID != userID {
			continue
		}
		if opts.Since != nil && !sess.CreatedAt.After(*opts.Since) {
			continue
		}
		out = append(out, sess)
	}
	s.mu.RUnlock()

	if opts.OrderBy != "" && !opts.Sortable("id", "created_at", "expires_at") {
		return nil, listing.ErrOrderBy
	}
	sort.SliceStable(out, func(i, j int) bool {
		var less bool
		switch opts.OrderBy {
		case "created_at":
			less = out[i].CreatedAt.Before(out[j].CreatedAt)
		case "expires_at":
			// Nil expiries sort last, matching NULLS LAST semantics.
			switch {
			case out[i].ExpiresAt == nil:
				less = false
			case out[j].ExpiresAt == nil:
				less = true
			default:
				less = out[i].ExpiresAt.Before(*out[j].ExpiresAt)
			}
		default:
			less = out[i].ID < out[j].ID
		}
		if opts.Descending {
			return !less
		}
		return less
	})

	if opts.All {
		return out, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = listing.DefaultLimit
	}
	if opts.Offset >= len(out) {
		return nil, nil
	}
	out = out[opts.Offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DeleteOne removes the session with the given id.
func (s *MemoryStore) DeleteOne(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false, nil
	}
	delete(s.sessions, id)
	return true, nil
}

// DeleteAllForUser removes every session owned by userID.
func (s *MemoryStore) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}
