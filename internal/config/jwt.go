package config

import (
	"fmt"
	"time"
)

// minSecretLength guards against guessable HS256 keys.
const minSecretLength = 16

// JWTConfig controls the owner session tokens. An empty Secret disables
// sign-in entirely.
type JWTConfig struct {
	Secret          string `yaml:"secret"`
	ExpirationHours int    `yaml:"expiration_hours"`
}

// Expiration returns the token lifetime.
func (c *JWTConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}

// Enabled reports whether tokens can be issued and verified.
func (c *JWTConfig) Enabled() bool {
	return c.Secret != ""
}

func (c *JWTConfig) validate() error {
	if len(c.Secret) < minSecretLength {
		return fmt.Errorf("'jwt.secret' must be at least %d characters", minSecretLength)
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("'jwt.expiration_hours' must be at least 1, got %d", c.ExpirationHours)
	}
	return nil
}
