package session

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"gatekey/cmd/identity"
	"gatekey/cmd/internal/client"
	"gatekey/cmd/internal/listing"
	"gatekey/cmd/security/keys"
)

// SessionRef identifies a session either by bearer token or by an already
// resolved Session value. Callers that validated a token earlier can hand
// the session back without paying for a second decrypt-and-lookup.
type SessionRef struct {
	token   string
	session *Session
}

// RefFromToken builds a reference from a raw bearer token.
func RefFromToken(token string) SessionRef {
	return SessionRef{token: token}
}

// RefFromSession builds a reference from a resolved session.
func RefFromSession(s *Session) SessionRef {
	return SessionRef{session: s}
}

// Service issues, validates, and revokes sessions.
type Service struct {
	cfg     Config
	deriver *keys.Deriver
	codec   Codec
	store   Store
	users   identity.Directory
	clock   func() time.Time
	metrics *Metrics
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source. Intended for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithCodec overrides the token codec.
func WithCodec(codec Codec) Option {
	return func(s *Service) { s.codec = codec }
}

// WithMetrics attaches metrics. Without it the service runs unmetered.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService builds a session service from cfg.
//
// The master secret is split into the token encryption key and the
// private-key derivation secret; neither is the master secret itself.
func NewService(cfg Config, store Store, users identity.Directory, opts ...Option) (*Service, error) {
	if store == nil || users == nil {
		return nil, ErrConfig
	}
	if cfg.DefaultSessionTTL <= 0 {
		return nil, ErrConfig
	}

	master, err := cfg.masterKey()
	if err != nil {
		return nil, err
	}
	tokenKey, derivationKey, err := keys.Split(master)
	if err != nil {
		return nil, ErrConfig
	}
	deriver, err := keys.NewDeriver(derivationKey)
	if err != nil {
		return nil, ErrConfig
	}

	s := &Service{
		cfg:     cfg,
		deriver: deriver,
		store:   store,
		users:   users,
		clock:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.codec == nil {
		codec, err := NewPasetoCodec(tokenKey)
		if err != nil {
			return nil, err
		}
		s.codec = codec
	}

	return s, nil
}

// CreateSession issues a new session for principal on behalf of c.
//
// The stored row carries both keys; the returned value is what callers
// serialize into a token. ErrInvalidInput when the principal has no
// identifier or the client has no id.
func (s *Service) CreateSession(ctx context.Context, principal identity.Principal, c client.Client, expiry Expiry) (*Session, error) {
	if principal == nil || strings.TrimSpace(principal.Identifier()) == "" {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(c.ID) == "" {
		return nil, ErrInvalidInput
	}

	now := s.clock()

	publicKey, err := s.deriver.GeneratePublic()
	if err != nil {
		return nil, err
	}

	sess := Session{
		ID:         s.newULID(now),
		UserID:     principal.Identifier(),
		ClientID:   c.ID,
		PublicKey:  publicKey,
		PrivateKey: s.deriver.DerivePrivate(publicKey),
		CreatedAt:  now,
		ExpiresAt:  expiry.resolve(now, s.cfg.DefaultSessionTTL),
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.metrics.sessionCreated()
	return &sess, nil
}

// SerializeSession encodes sess into an opaque bearer token. The private
// key is never part of the token.
func (s *Service) SerializeSession(sess *Session) (string, error) {
	if sess == nil {
		return "", ErrInvalidInput
	}
	return s.codec.Serialize(Payload{
		ClientID:  sess.ClientID,
		UserID:    sess.UserID,
		PublicKey: sess.PublicKey,
		ExpiresAt: sess.ExpiresAt,
	})
}

// FindSession validates a bearer token and returns the matching session.
//
// A token that decrypts but matches no stored row yields (nil, nil): the
// session was revoked or never existed, which is not an error condition.
// ErrInvalidToken and ErrTokenExpired report hard token failures; any
// other error is a storage failure.
func (s *Service) FindSession(ctx context.Context, token string) (*Session, error) {
	now := s.clock()

	p, err := s.codec.Deserialize(token, now)
	if errors.Is(err, ErrTokenExpired) {
		s.metrics.tokenRejected("expired")
		return nil, err
	}
	if err != nil {
		s.metrics.tokenRejected("invalid")
		return nil, ErrInvalidToken
	}

	sess, err := s.store.FindOne(ctx, Match{
		UserID:     p.UserID,
		ClientID:   p.ClientID,
		PublicKey:  p.PublicKey,
		PrivateKey: s.deriver.DerivePrivate(p.PublicKey),
	})
	if errors.Is(err, ErrSessionNotFound) {
		s.metrics.tokenRejected("not_found")
		return nil, nil
	}
	if err != nil {
		s.metrics.tokenRejected("storage")
		return nil, err
	}

	// Belt and braces: the row's own expiry is authoritative even if the
	// token omitted one.
	if sess.Expired(now) {
		s.metrics.tokenRejected("expired")
		return nil, ErrTokenExpired
	}

	return &sess, nil
}

// FindUser resolves ref to the owning user.
//
// Unknown users yield (nil, nil); token failures propagate as
// ErrInvalidToken or ErrTokenExpired.
func (s *Service) FindUser(ctx context.Context, ref SessionRef) (*identity.User, error) {
	sess, err := s.resolveRef(ctx, ref)
	if err != nil || sess == nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, sess.UserID)
	if errors.Is(err, identity.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteSession revokes the session ref points at. It reports whether a
// session was actually removed; revoking an already revoked or unknown
// session returns false without error, as do invalid and expired tokens.
func (s *Service) DeleteSession(ctx context.Context, ref SessionRef) (bool, error) {
	sess, err := s.resolveRef(ctx, ref)
	if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrTokenExpired) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if sess == nil {
		return false, nil
	}

	deleted, err := s.store.DeleteOne(ctx, sess.ID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.metrics.sessionRevoked()
	}
	return deleted, nil
}

// PurgeSessions revokes every session owned by principal. It reports
// whether any session was removed.
func (s *Service) PurgeSessions(ctx context.Context, principal identity.Principal) (bool, error) {
	if principal == nil {
		return false, ErrInvalidInput
	}
	return s.PurgeSessionsByID(ctx, principal.Identifier())
}

// PurgeSessionsByID revokes every session owned by the given user id.
func (s *Service) PurgeSessionsByID(ctx context.Context, userID string) (bool, error) {
	if strings.TrimSpace(userID) == "" {
		return false, ErrInvalidInput
	}

	n, err := s.store.DeleteAllForUser(ctx, userID)
	if err != nil {
		return false, err
	}
	s.metrics.sessionsPurged(n)
	return n > 0, nil
}

// ListSessions returns the user's sessions shaped by opts.
func (s *Service) ListSessions(ctx context.Context, userID string, opts listing.Options) ([]Session, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.store.FindByUser(ctx, userID, opts)
}

// resolveRef turns a SessionRef into a session, validating tokens through
// the full two-layer path.
func (s *Service) resolveRef(ctx context.Context, ref SessionRef) (*Session, error) {
	if ref.session != nil {
		return ref.session, nil
	}
	if ref.token == "" {
		return nil, ErrInvalidInput
	}
	return s.FindSession(ctx, ref.token)
}

// newULID mints a lexicographically sortable session id.
func (s *Service) newULID(now time.Time) string {
	return ulid.MustNew(ulid.Timestamp(now), rand.Reader).String()
}
