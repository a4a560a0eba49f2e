package session

import (
	"testing"
	"time"
)

func TestParseExpiry(t *testing.T) {
	t.Parallel()

	want := time.Date(2026, 5, 10, 8, 30, 0, 0, time.UTC)

	cases := []struct {
		name  string
		value string
		at    *time.Time
	}{
		{"rfc3339", "2026-05-10T08:30:00Z", &want},
		{"datetime", "2026-05-10 08:30:00", &want},
		{"date only", "2026-05-10", func() *time.Time {
			d := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
			return &d
		}()},
		{"garbage falls back to default", "not-a-date", nil},
		{"empty falls back to default", "", nil},
	}

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ParseExpiry(tc.value).resolve(now, DefaultSessionTTL)
			if got == nil {
				t.Fatalf("resolve returned nil")
			}

			want := now.Add(DefaultSessionTTL)
			if tc.at != nil {
				want = *tc.at
			}
			if !got.Equal(want) {
				t.Fatalf("resolved to %v, want %v", got, want)
			}
		})
	}
}

func TestExpiryResolve(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := NeverExpires().resolve(now, DefaultSessionTTL); got != nil {
		t.Fatalf("NeverExpires resolved to %v, want nil", got)
	}

	got := DefaultExpiry().resolve(now, 48*time.Hour)
	if got == nil || !got.Equal(now.Add(48*time.Hour)) {
		t.Fatalf("DefaultExpiry resolved to %v", got)
	}

	// The zero value behaves like DefaultExpiry.
	got = (Expiry{}).resolve(now, 48*time.Hour)
	if got == nil || !got.Equal(now.Add(48*time.Hour)) {
		t.Fatalf("zero Expiry resolved to %v", got)
	}

	at := time.Date(2027, 3, 4, 5, 6, 7, 0, time.UTC)
	got = ExpiresAt(at).resolve(now, DefaultSessionTTL)
	if got == nil || !got.Equal(at) {
		t.Fatalf("ExpiresAt resolved to %v, want %v", got, at)
	}
}

func TestSessionExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	if (Session{ExpiresAt: nil}).Expired(now) {
		t.Fatal("session without expiry reported expired")
	}
	if !(Session{ExpiresAt: &past}).Expired(now) {
		t.Fatal("past expiry not reported expired")
	}
	if (Session{ExpiresAt: &future}).Expired(now) {
		t.Fatal("future expiry reported expired")
	}
}
