package session

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gatekey/cmd/internal/listing"
)

// PostgresStore implements Store over PostgreSQL (gatekey.sessions).
//
// Expired rows are not swept here; they stay until presentation rejects
// them and a purge or revoke removes the row.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed session store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, ErrConfig
	}
	return &PostgresStore{pool: pool}, nil
}

// Save persists a new session row.
func (s *PostgresStore) Save(ctx context.Context, sess Session) error {
	if err := requireFields(sess); err != nil {
		return err
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO gatekey.sessions
			(id, user_id, client_id, public_key, private_key, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, sess.ID, sess.UserID, sess.ClientID, sess.PublicKey, sess.PrivateKey,
		sess.CreatedAt, sess.ExpiresAt)
	return err
}

// FindOne returns the session matching all fields of m.
func (s *PostgresStore) FindOne(ctx context.Context, m Match) (Session, error) {
	var sess Session
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, client_id, public_key, private_key, created_at, expires_at
		FROM gatekey.sessions
		WHERE user_id = $1 AND client_id = $2 AND public_key = $3 AND private_key = $4
	`, m.UserID, m.ClientID, m.PublicKey, m.PrivateKey).Scan(
		&sess.ID, &sess.UserID, &sess.ClientID, &sess.PublicKey,
		&sess.PrivateKey, &sess.CreatedAt, &sess.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, err
	}

	return normalize(sess), nil
}

// FindByUser returns the user's sessions shaped by opts.
func (s *PostgresStore) FindByUser(ctx context.Context, userID string, opts listing.Options) ([]Session, error) {
	query := `
		SELECT id, user_id, client_id, public_key, private_key, created_at, expires_at
		FROM gatekey.sessions
		WHERE user_id = $1`
	args := []any{userID}

	if opts.Since != nil {
		query += ` AND created_at > $2`
		args = append(args, *opts.Since)
	}

	suffix, err := opts.Suffix("id", "created_at", "expires_at")
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, query+suffix, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.UserID, &sess.ClientID, &sess.PublicKey,
			&sess.PrivateKey, &sess.CreatedAt, &sess.ExpiresAt); err != nil {
			return nil, err
		}
		out = append(out, normalize(sess))
	}
	return out, rows.Err()
}

// DeleteOne removes the session with the given id.
func (s *PostgresStore) DeleteOne(ctx context.Context, id string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM gatekey.sessions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteAllForUser removes every session owned by userID.
func (s *PostgresStore) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM gatekey.sessions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func requireFields(sess Session) error {
	for _, f := range []string{sess.ID, sess.UserID, sess.ClientID, sess.PublicKey, sess.PrivateKey} {
		if strings.TrimSpace(f) == "" {
			return ErrInvalidInput
		}
	}
	return nil
}

// normalize pins scanned timestamps to UTC so values compare cleanly
// regardless of the connection's timezone.
func normalize(sess Session) Session {
	sess.CreatedAt = sess.CreatedAt.UTC()
	if sess.ExpiresAt != nil {
		t := sess.ExpiresAt.UTC()
		sess.ExpiresAt = &t
	}
	return sess
}
