package session

import (
	"encoding/hex"
	"os"
	"time"

	"gatekey/cmd/security/keys"
)

// DefaultSessionTTL is the lifetime applied when a caller requests the
// default expiry: four weeks from issuance.
const DefaultSessionTTL = 4 * 7 * 24 * time.Hour

// Config defines runtime configuration for the session subsystem.
//
// One master secret feeds both the token encryption key and the private-key
// derivation secret; the two are separated internally so a leak of either
// derived key does not expose the other.
type Config struct {
	// MasterKeyHex is the hex-encoded master secret. It must decode to at
	// least 32 bytes.
	MasterKeyHex string

	// DefaultSessionTTL is the lifetime applied to sessions issued with
	// the default expiry.
	DefaultSessionTTL time.Duration
}

// DefaultConfig returns the default configuration. The master key has no
// default and must always be provided.
func DefaultConfig() Config {
	return Config{
		DefaultSessionTTL: DefaultSessionTTL,
	}
}

// LoadConfigFromEnv loads session configuration from environment variables.
//
// Required:
//   - GATEKEY_MASTER_KEY_HEX
//
// Optional:
//   - GATEKEY_SESSION_DEFAULT_TTL (Go duration string, must be positive)
//
// Returns ErrConfig if configuration is invalid.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("GATEKEY_SESSION_DEFAULT_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.DefaultSessionTTL = d
	}

	cfg.MasterKeyHex = os.Getenv("GATEKEY_MASTER_KEY_HEX")
	if cfg.MasterKeyHex == "" {
		return Config{}, ErrConfig
	}
	if _, err := cfg.masterKey(); err != nil {
		return Config{}, ErrConfig
	}

	return cfg, nil
}

// Validate checks the configuration without building a service.
func (c Config) Validate() error {
	if c.DefaultSessionTTL <= 0 {
		return ErrConfig
	}
	_, err := c.masterKey()
	return err
}

// masterKey decodes and validates the master secret.
func (c Config) masterKey() ([]byte, error) {
	b, err := hex.DecodeString(c.MasterKeyHex)
	if err != nil {
		return nil, ErrConfig
	}
	if len(b) < keys.MinSecretBytes {
		return nil, ErrConfig
	}
	return b, nil
}
