package keys

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// HKDF info strings. Changing either invalidates all issued tokens or all
// stored private keys, respectively.
const (
	infoTokenKey      = "gatekey/v1/token-key"
	infoDerivationKey = "gatekey/v1/derivation-key"
)

// Split expands a master secret into the token-encryption key and the
// private-key derivation secret, each 32 bytes. The expansion is
// deterministic, so a stable master secret yields stable keys across
// restarts.
func Split(master []byte) (tokenKey, derivationKey []byte, err error) {
	if len(master) < MinSecretBytes {
		return nil, nil, ErrSecretTooShort
	}

	tokenKey, err = expand(master, infoTokenKey)
	if err != nil {
		return nil, nil, err
	}
	derivationKey, err = expand(master, infoDerivationKey)
	if err != nil {
		return nil, nil, err
	}
	return tokenKey, derivationKey, nil
}

func expand(master []byte, info string) ([]byte, error) {
	r := hkdf.New(sha256.New, master, nil, []byte(info))
	out := make([]byte, 32)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}
