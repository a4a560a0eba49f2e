package keys

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
)

const (
	// PublicKeyBytes is the entropy of generated public keys.
	// 32 random bytes keep collision probability negligible for any
	// realistic session table.
	PublicKeyBytes = 32

	// MinSecretBytes is the minimum accepted secret length (HMAC-SHA256).
	MinSecretBytes = 32
)

// Deriver generates public session keys and derives their private
// counterparts from a server-held secret.
type Deriver struct {
	secret []byte
}

// NewDeriver builds a Deriver. The secret must be at least MinSecretBytes.
func NewDeriver(secret []byte) (*Deriver, error) {
	if len(secret) < MinSecretBytes {
		return nil, ErrSecretTooShort
	}
	s := make([]byte, len(secret))
	copy(s, secret)
	return &Deriver{secret: s}, nil
}

// GeneratePublic returns a fresh random public key (URL-safe base64, no padding).
func (d *Deriver) GeneratePublic() (string, error) {
	b := make([]byte, PublicKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DerivePrivate returns the private key for publicKey:
// HMAC-SHA256(publicKey, secret), hex encoded (64 chars).
// Deterministic for a fixed secret; infeasible to predict without it.
func (d *Deriver) DerivePrivate(publicKey string) string {
	m := hmac.New(sha256.New, d.secret)
	_, _ = m.Write([]byte(publicKey))
	return hex.EncodeToString(m.Sum(nil))
}

// Verify recomputes the private key for publicKey and compares it to
// privateKey in constant time. Length mismatches fail fast; equal-length
// inputs are compared with a fixed-time routine.
func (d *Deriver) Verify(publicKey, privateKey string) bool {
	want := d.DerivePrivate(publicKey)
	if len(privateKey) != len(want) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(privateKey)) == 1
}
