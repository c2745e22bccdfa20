package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// SecretSize is the default signing secret length in bytes (256 bits).
const SecretSize = 32

// GenerateSecret returns size random bytes encoded as base64url without
// padding, suitable as a SECRET_KEY value.
func GenerateSecret(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("secret size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random secret: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
