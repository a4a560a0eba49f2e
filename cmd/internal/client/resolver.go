package client

import (
	"context"
	"errors"
	"strings"
)

// Resolver answers "which client is this?" for id-or-name references.
type Resolver struct {
	store Store
}

// NewResolver constructs a Resolver.
func NewResolver(store Store) (*Resolver, error) {
	if store == nil {
		return nil, ErrInvalidInput
	}
	return &Resolver{store: store}, nil
}

// FindClient resolves ref to a client. A blank or unknown ref yields nil
// without error; storage failures are surfaced as-is.
func (r *Resolver) FindClient(ctx context.Context, ref string) (*Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}

	c, err := r.store.GetByIDOrName(ctx, ref)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ValidateClient reports whether ref resolves to a known client.
func (r *Resolver) ValidateClient(ctx context.Context, ref string) (bool, error) {
	c, err := r.FindClient(ctx, ref)
	if err != nil {
		return false, err
	}
	return c != nil, nil
}
