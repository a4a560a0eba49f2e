package session

import (
	"time"

	paseto "aidanwoods.dev/go-paseto"
)

// Token claim names.
const (
	claimClientID  = "cid"
	claimUserID    = "uid"
	claimPublicKey = "pub"
)

// Payload is the decoded content of a session token.
type Payload struct {
	ClientID  string
	UserID    string
	PublicKey string
	ExpiresAt *time.Time
}

// Codec turns session payloads into opaque bearer tokens and back.
type Codec interface {
	// Serialize encrypts p into a token string.
	Serialize(p Payload) (string, error)

	// Deserialize decrypts and validates a token at the given instant.
	// It returns ErrInvalidToken when the token cannot be decrypted or is
	// missing claims, and ErrTokenExpired when it decrypts but is stale.
	Deserialize(token string, now time.Time) (Payload, error)
}

type pasetoCodec struct {
	key paseto.V4SymmetricKey
}

// NewPasetoCodec builds a Codec around PASETO v4.local symmetric
// encryption. The key must be exactly 32 bytes.
func NewPasetoCodec(key []byte) (Codec, error) {
	k, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, ErrConfig
	}
	return &pasetoCodec{key: k}, nil
}

func (c *pasetoCodec) Serialize(p Payload) (string, error) {
	// MakeToken over NewToken: no implicit default claims, so a session
	// without an expiry produces a token without an "exp".
	tok, err := paseto.MakeToken(map[string]any{
		claimClientID:  p.ClientID,
		claimUserID:    p.UserID,
		claimPublicKey: p.PublicKey,
	}, nil)
	if err != nil {
		return "", err
	}
	if p.ExpiresAt != nil {
		tok.SetExpiration(p.ExpiresAt.UTC())
	}

	return tok.V4Encrypt(c.key, nil), nil
}

func (c *pasetoCodec) Deserialize(token string, now time.Time) (Payload, error) {
	// Expiry is checked by hand below so a stale token maps to
	// ErrTokenExpired instead of folding into ErrInvalidToken.
	parser := paseto.NewParserWithoutExpiryCheck()

	tok, err := parser.ParseV4Local(c.key, token, nil)
	if err != nil {
		return Payload{}, ErrInvalidToken
	}

	var p Payload
	if p.ClientID, err = tok.GetString(claimClientID); err != nil || p.ClientID == "" {
		return Payload{}, ErrInvalidToken
	}
	if p.UserID, err = tok.GetString(claimUserID); err != nil || p.UserID == "" {
		return Payload{}, ErrInvalidToken
	}
	if p.PublicKey, err = tok.GetString(claimPublicKey); err != nil || p.PublicKey == "" {
		return Payload{}, ErrInvalidToken
	}

	if exp, err := tok.GetExpiration(); err == nil {
		if exp.Before(now) {
			return Payload{}, ErrTokenExpired
		}
		exp = exp.UTC()
		p.ExpiresAt = &exp
	}

	return p, nil
}
