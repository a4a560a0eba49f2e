package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"gatekey/cmd/internal/listing"
)

func seedSession(t *testing.T, store Store, id, userID, clientID string, createdAt time.Time, expiresAt *time.Time) Session {
	t.Helper()

	sess := Session{
		ID:         id,
		UserID:     userID,
		ClientID:   clientID,
		PublicKey:  "pub-" + id,
		PrivateKey: "priv-" + id,
		CreatedAt:  createdAt,
		ExpiresAt:  expiresAt,
	}
	if err := store.Save(context.Background(), sess); err != nil {
		t.Fatalf("Save %s: %v", id, err)
	}
	return sess
}

func TestMemoryStore_FindOne(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	sess := seedSession(t, store, "s1", "42", "7", testNow, nil)

	got, err := store.FindOne(ctx, Match{
		UserID:     sess.UserID,
		ClientID:   sess.ClientID,
		PublicKey:  sess.PublicKey,
		PrivateKey: sess.PrivateKey,
	})
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if got.ID != "s1" {
		t.Fatalf("FindOne returned %+v", got)
	}

	// A single stale field must miss; all four are matched together.
	for name, m := range map[string]Match{
		"wrong user":    {UserID: "43", ClientID: "7", PublicKey: sess.PublicKey, PrivateKey: sess.PrivateKey},
		"wrong client":  {UserID: "42", ClientID: "8", PublicKey: sess.PublicKey, PrivateKey: sess.PrivateKey},
		"wrong public":  {UserID: "42", ClientID: "7", PublicKey: "pub-x", PrivateKey: sess.PrivateKey},
		"wrong private": {UserID: "42", ClientID: "7", PublicKey: sess.PublicKey, PrivateKey: "priv-x"},
	} {
		if _, err := store.FindOne(ctx, m); !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("%s: expected ErrSessionNotFound, got %v", name, err)
		}
	}
}

func TestMemoryStore_SaveValidation(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	err := store.Save(context.Background(), Session{ID: "s1", UserID: "42"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMemoryStore_FindByUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	exp := testNow.Add(time.Hour)
	seedSession(t, store, "s1", "42", "7", testNow, &exp)
	seedSession(t, store, "s2", "42", "8", testNow.Add(time.Minute), nil)
	seedSession(t, store, "s3", "99", "7", testNow, nil)

	got, err := store.FindByUser(ctx, "42", listing.Options{All: true, OrderBy: "created_at", Descending: true})
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if len(got) != 2 || got[0].ID != "s2" || got[1].ID != "s1" {
		t.Fatalf("FindByUser returned %+v", got)
	}

	// Nil expiries sort after concrete ones.
	got, err = store.FindByUser(ctx, "42", listing.Options{All: true, OrderBy: "expires_at"})
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if len(got) != 2 || got[0].ID != "s1" || got[1].ID != "s2" {
		t.Fatalf("FindByUser expires_at order returned %+v", got)
	}

	since := testNow.Add(30 * time.Second)
	got, err = store.FindByUser(ctx, "42", listing.Options{All: true, Since: &since})
	if err != nil {
		t.Fatalf("FindByUser since: %v", err)
	}
	if len(got) != 1 || got[0].ID != "s2" {
		t.Fatalf("FindByUser since returned %+v", got)
	}

	if _, err := store.FindByUser(ctx, "42", listing.Options{OrderBy: "private_key"}); !errors.Is(err, listing.ErrOrderBy) {
		t.Fatalf("expected listing.ErrOrderBy, got %v", err)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	seedSession(t, store, "s1", "42", "7", testNow, nil)
	seedSession(t, store, "s2", "42", "8", testNow, nil)
	seedSession(t, store, "s3", "99", "7", testNow, nil)

	deleted, err := store.DeleteOne(ctx, "s1")
	if err != nil || !deleted {
		t.Fatalf("DeleteOne: deleted=%v err=%v", deleted, err)
	}
	deleted, err = store.DeleteOne(ctx, "s1")
	if err != nil || deleted {
		t.Fatalf("repeat DeleteOne: deleted=%v err=%v", deleted, err)
	}

	n, err := store.DeleteAllForUser(ctx, "42")
	if err != nil || n != 1 {
		t.Fatalf("DeleteAllForUser: n=%d err=%v", n, err)
	}
	n, err = store.DeleteAllForUser(ctx, "42")
	if err != nil || n != 0 {
		t.Fatalf("repeat DeleteAllForUser: n=%d err=%v", n, err)
	}

	if _, err := store.FindOne(ctx, Match{UserID: "99", ClientID: "7", PublicKey: "pub-s3", PrivateKey: "priv-s3"}); err != nil {
		t.Fatalf("unrelated session lost: %v", err)
	}
}
