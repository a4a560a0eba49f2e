package app

import (
	"errors"

	"gatekey/cmd/internal/auth/session"
)

// ValidateSecurityConfig enforces the key policy at startup.
//
// Fail-fast is intentional: a server that cannot derive private keys or
// encrypt tokens must not come up at all.
func ValidateSecurityConfig(cfg session.Config) error {
	if cfg.MasterKeyHex == "" {
		return errors.New("security policy: GATEKEY_MASTER_KEY_HEX is missing")
	}

	// The master key is raw bytes, so length is measured after hex
	// decoding, not on the string.
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, session.ErrConfig) {
			return errors.New("security policy: GATEKEY_MASTER_KEY_HEX is not valid hex or is too short (min 32 bytes)")
		}
		return err
	}

	return nil
}
