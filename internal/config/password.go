package config

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordConfig holds configuration for hashing and checking the owner password.
type PasswordConfig struct {
	BcryptCost int    `yaml:"bcrypt_cost"`
	Pepper     string `yaml:"pepper"` // optional global secret appended before hashing
}

const (
	minBcryptCost = 10
	maxBcryptCost = 14
)

func (c *PasswordConfig) validate() error {
	if c.BcryptCost < minBcryptCost || c.BcryptCost > maxBcryptCost {
		return fmt.Errorf("'password.bcrypt_cost' must be between %d and %d, got %d", minBcryptCost, maxBcryptCost, c.BcryptCost)
	}
	return nil
}

func (c *PasswordConfig) peppered(pw string) []byte {
	return []byte(pw + c.Pepper)
}

// HashPassword hashes a password using bcrypt (with optional pepper).
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	if pw == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword(c.peppered(pw), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a stored hash (with optional pepper).
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), c.peppered(pw)) == nil
}

// Authenticate reports whether email and password identify the owner.
// Email comparison ignores case. The bcrypt check runs even when the email
// does not match.
func (o OwnerConfig) Authenticate(pc *PasswordConfig, email, password string) bool {
	if o.Email == "" || o.PasswordHash == "" {
		return false
	}
	want := strings.ToLower(strings.TrimSpace(o.Email))
	got := strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
	passwordOK := pc.VerifyPassword(password, o.PasswordHash)
	return emailOK && passwordOK
}

// IsOwner reports whether email belongs to the owner, ignoring case.
func (o OwnerConfig) IsOwner(email string) bool {
	return o.Email != "" && strings.EqualFold(strings.TrimSpace(email), strings.TrimSpace(o.Email))
}
