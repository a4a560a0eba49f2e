package client

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gatekey/cmd/internal/listing"
)

// PostgresStore implements Store over PostgreSQL (gatekey.clients).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed client store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, ErrInvalidInput
	}
	return &PostgresStore{pool: pool}, nil
}

// GetByIDOrName returns the client matching ref by id, else by name.
// The ORDER BY prefers the id match when both columns happen to match ref.
func (s *PostgresStore) GetByIDOrName(ctx context.Context, ref string) (Client, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Client{}, ErrInvalidInput
	}

	var c Client
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, created_at
		FROM gatekey.clients
		WHERE id = $1 OR name = $1
		ORDER BY (id = $1) DESC
		LIMIT 1
	`, ref).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Client{}, ErrNotFound
	}
	if err != nil {
		return Client{}, err
	}

	return c, nil
}

// List returns clients shaped by opts.
func (s *PostgresStore) List(ctx context.Context, opts listing.Options) ([]Client, error) {
	query := `
		SELECT id, name, created_at
		FROM gatekey.clients`
	args := []any{}

	if opts.Since != nil {
		query += ` WHERE created_at > $1`
		args = append(args, *opts.Since)
	}

	suffix, err := opts.Suffix("id", "name", "created_at")
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, query+suffix, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
