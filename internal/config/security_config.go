package config

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
)

type SecurityConfig interface {
	GetSessionHashKey() []byte
	GetSessionBlockKey() []byte
	GetCSRFKey() []byte
}

const (
	sessionHashKeyVar  = "SESSION_HASH_KEY"
	sessionBlockKeyVar = "SESSION_BLOCK_KEY"
	csrfKeyVar         = "CSRF_KEY"
)

type Security struct{}

var _ SecurityConfig = Security{}

// GetSessionHashKey returns the HMAC key for the gateway session cookie.
// Falls back to a derived development key when the env var is unset.
func (Security) GetSessionHashKey() []byte {
	return keyFromEnv(sessionHashKeyVar, "portal-dev-session-hash")
}

// GetSessionBlockKey returns the encryption key for the gateway session cookie.
func (Security) GetSessionBlockKey() []byte {
	return keyFromEnv(sessionBlockKeyVar, "portal-dev-session-block")
}

// GetCSRFKey returns the 32-byte key used for CSRF token generation.
func (Security) GetCSRFKey() []byte {
	return keyFromEnv(csrfKeyVar, "portal-dev-csrf")
}

// keyFromEnv reads a hex-encoded 32-byte key from the environment. Any value
// that doesn't decode to 32 bytes, or an unset var, yields a key derived from
// the development seed so local runs work without configuration.
func keyFromEnv(envVar, devSeed string) []byte {
	if value := os.Getenv(envVar); value != "" {
		if decoded, err := hex.DecodeString(value); err == nil && len(decoded) == 32 {
			return decoded
		}
	}
	derived := sha256.Sum256([]byte(devSeed))
	return derived[:]
}
