// Package client resolves API client references.
//
// A reference may be a client id or a client name; the two are treated as
// alternative keys in one namespace, so the data layer is responsible for
// keeping names from colliding with ids.
package client

import (
	"context"
	"time"

	"gatekey/cmd/internal/listing"
)

// Client is a registered API consumer.
type Client struct {
	ID   string
	Name string

	CreatedAt time.Time
}

// Store abstracts client persistence.
type Store interface {
	// GetByIDOrName returns the client whose id equals ref or, failing
	// that, whose name equals ref. An id match wins over a name match.
	// ErrNotFound when neither matches.
	GetByIDOrName(ctx context.Context, ref string) (Client, error)

	// List returns clients shaped by opts.
	List(ctx context.Context, opts listing.Options) ([]Client, error)
}
