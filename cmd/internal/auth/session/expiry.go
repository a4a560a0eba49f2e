package session

import "time"

type expiryKind int

const (
	expiryDefault expiryKind = iota
	expiryNever
	expiryAt
)

// Expiry expresses a caller's lifetime request for a new session.
//
// The zero value asks for the configured default lifetime. Use NeverExpires
// for a non-expiring session or ExpiresAt for an explicit instant.
type Expiry struct {
	kind expiryKind
	at   time.Time
}

// DefaultExpiry requests the configured default session lifetime.
func DefaultExpiry() Expiry { return Expiry{kind: expiryDefault} }

// NeverExpires requests a session without an expiry.
func NeverExpires() Expiry { return Expiry{kind: expiryNever} }

// ExpiresAt requests a session expiring at the given instant.
func ExpiresAt(t time.Time) Expiry { return Expiry{kind: expiryAt, at: t.UTC()} }

// Layouts accepted by ParseExpiry, tried in order.
var expiryLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseExpiry interprets a textual expiry. An unparseable value falls back
// to the default lifetime rather than failing, so a malformed client hint
// degrades to the safe default instead of blocking issuance.
func ParseExpiry(value string) Expiry {
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return ExpiresAt(t)
		}
	}
	return DefaultExpiry()
}

// resolve turns the request into a concrete expiry instant. Nil means the
// session never expires.
func (e Expiry) resolve(now time.Time, defaultTTL time.Duration) *time.Time {
	switch e.kind {
	case expiryNever:
		return nil
	case expiryAt:
		t := e.at
		return &t
	default:
		t := now.Add(defaultTTL)
		return &t
	}
}
