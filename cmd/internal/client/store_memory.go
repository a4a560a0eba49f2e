package client

import (
	"context"
	"sort"
	"strings"
	"sync"

	"gatekey/cmd/internal/listing"
)

// MemoryStore is an in-memory Store for dev mode and tests.
//
// Put enforces the shared id/name namespace: a new client may not reuse an
// existing client's id or name on either axis.
type MemoryStore struct {
	mu      sync.RWMutex
	clients []Client
}

// NewMemoryStore creates an empty in-memory client store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Put registers a client.
func (s *MemoryStore) Put(c Client) error {
	if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == "" {
		return ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.clients {
		if existing.ID == c.ID || existing.Name == c.Name ||
			existing.ID == c.Name || existing.Name == c.ID {
			return ErrConflict
		}
	}
	s.clients = append(s.clients, c)
	return nil
}

// GetByIDOrName returns the client matching ref by id, else by name.
func (s *MemoryStore) GetByIDOrName(ctx context.Context, ref string) (Client, error) {
	if err := ctx.Err(); err != nil {
		return Client{}, err
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Client{}, ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.clients {
		if c.ID == ref {
			return c, nil
		}
	}
	for _, c := range s.clients {
		if c.Name == ref {
			return c, nil
		}
	}
	return Client{}, ErrNotFound
}

// List returns clients shaped by opts.
func (s *MemoryStore) List(ctx context.Context, opts listing.Options) ([]Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]Client, 0, len(s.clients))
	for _, c := range s.clients {
		if opts.Since != nil && !c.CreatedAt.After(*opts.Since) {
			continue
		}
		out = append(out, c)
	}
	s.mu.RUnlock()

	if opts.OrderBy != "" {
		if !opts.Sortable("id", "name", "created_at") {
			return nil, listing.ErrOrderBy
		}
		sort.SliceStable(out, func(i, j int) bool {
			var less bool
			switch opts.OrderBy {
			case "name":
				less = out[i].Name < out[j].Name
			case "created_at":
				less = out[i].CreatedAt.Before(out[j].CreatedAt)
			default:
				less = out[i].ID < out[j].ID
			}
			if opts.Descending {
				return !less
			}
			return less
		})
	}

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
