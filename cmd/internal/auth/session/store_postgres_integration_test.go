package session

import (
	"context"
	"crypto/rand"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"gatekey/cmd/internal/listing"
)

// Integration tests are enabled when GATEKEY_DATABASE_URL is set. They
// expect the gatekey schema from db/schema.sql to be applied.

func mustIntegrationPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()

	dbURL := os.Getenv("GATEKEY_DATABASE_URL")
	if dbURL == "" {
		t.Skip("GATEKEY_DATABASE_URL is not set; skipping Postgres integration test")
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("pgxpool.New: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := pool.Ping(ctx); err != nil {
		t.Skipf("Postgres unreachable: %v", err)
	}
	return pool
}

func integrationULID(t *testing.T) string {
	t.Helper()
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

func mustSeedRow(ctx context.Context, t *testing.T, pool *pgxpool.Pool, table, id string) {
	t.Helper()

	var err error
	switch table {
	case "users":
		_, err = pool.Exec(ctx, `INSERT INTO gatekey.users (id) VALUES ($1)`, id)
	case "clients":
		_, err = pool.Exec(ctx, `INSERT INTO gatekey.clients (id, name) VALUES ($1, $1)`, id)
	}
	if err != nil {
		t.Fatalf("seed %s %s: %v", table, id, err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM gatekey.`+table+` WHERE id = $1`, id)
	})
}

func TestPostgresStore_SessionLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pool := mustIntegrationPool(ctx, t)

	store, err := NewPostgresStore(pool)
	if err != nil {
		t.Fatalf("NewPostgresStore: %v", err)
	}

	userID := integrationULID(t)
	clientID := integrationULID(t)
	mustSeedRow(ctx, t, pool, "users", userID)
	mustSeedRow(ctx, t, pool, "clients", clientID)
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM gatekey.sessions WHERE user_id = $1`, userID)
	})

	now := time.Now().UTC().Truncate(time.Microsecond)
	exp := now.Add(time.Hour)

	sess := Session{
		ID:         integrationULID(t),
		UserID:     userID,
		ClientID:   clientID,
		PublicKey:  "pub-" + integrationULID(t),
		PrivateKey: "priv-" + integrationULID(t),
		CreatedAt:  now,
		ExpiresAt:  &exp,
	}
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.FindOne(ctx, Match{
		UserID:     sess.UserID,
		ClientID:   sess.ClientID,
		PublicKey:  sess.PublicKey,
		PrivateKey: sess.PrivateKey,
	})
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if got.ID != sess.ID || !got.CreatedAt.Equal(now) {
		t.Fatalf("FindOne returned %+v", got)
	}
	if got.ExpiresAt == nil || !got.ExpiresAt.Equal(exp) {
		t.Fatalf("ExpiresAt = %v, want %v", got.ExpiresAt, exp)
	}

	list, err := store.FindByUser(ctx, userID, listing.Options{All: true, OrderBy: "created_at"})
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if len(list) != 1 || list[0].ID != sess.ID {
		t.Fatalf("FindByUser returned %+v", list)
	}

	deleted, err := store.DeleteOne(ctx, sess.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteOne: deleted=%v err=%v", deleted, err)
	}
	deleted, err = store.DeleteOne(ctx, sess.ID)
	if err != nil || deleted {
		t.Fatalf("repeat DeleteOne: deleted=%v err=%v", deleted, err)
	}
}

func TestPostgresStore_PurgeByUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pool := mustIntegrationPool(ctx, t)

	store, err := NewPostgresStore(pool)
	if err != nil {
		t.Fatalf("NewPostgresStore: %v", err)
	}

	userID := integrationULID(t)
	clientID := integrationULID(t)
	mustSeedRow(ctx, t, pool, "users", userID)
	mustSeedRow(ctx, t, pool, "clients", clientID)
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM gatekey.sessions WHERE user_id = $1`, userID)
	})

	now := time.Now().UTC().Truncate(time.Microsecond)
	for i := 0; i < 3; i++ {
		sess := Session{
			ID:         integrationULID(t),
			UserID:     userID,
			ClientID:   clientID,
			PublicKey:  "pub-" + integrationULID(t),
			PrivateKey: "priv-" + integrationULID(t),
			CreatedAt:  now,
		}
		if err := store.Save(ctx, sess); err != nil {
			t.Fatalf("Save %d: %v", i, err)
		}
	}

	n, err := store.DeleteAllForUser(ctx, userID)
	if err != nil || n != 3 {
		t.Fatalf("DeleteAllForUser: n=%d err=%v", n, err)
	}
	n, err = store.DeleteAllForUser(ctx, userID)
	if err != nil || n != 0 {
		t.Fatalf("repeat DeleteAllForUser: n=%d err=%v", n, err)
	}
}
