package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// applyEnv overrides fields from environment variables. Unset variables leave
// the current value alone; malformed ones are errors.
func (c *Config) applyEnv() error {
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.Store, "ATS_STORE")
	setString(&c.LLM.APIKey, "GEMINI_API_KEY")
	setString(&c.LLM.Model, "LLM_MODEL")
	setString(&c.Owner.Email, "OWNER_EMAIL")
	setString(&c.Owner.PasswordHash, "OWNER_PASSWORD_HASH")
	setString(&c.JWT.Secret, "JWT_SECRET")
	setString(&c.Password.Pepper, "PASSWORD_PEPPER")

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.AllowedOrigins = splitList(origins)
	}
	if whitelist := os.Getenv("RATE_LIMIT_WHITELIST"); whitelist != "" {
		c.RateLimit.Whitelist = splitList(whitelist)
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"PORT", &c.Port},
		{"JWT_EXPIRATION_HOURS", &c.JWT.ExpirationHours},
		{"BCRYPT_COST", &c.Password.BcryptCost},
		{"QUOTA_ANONYMOUS_SCORE", &c.Quota.AnonymousScore},
		{"QUOTA_ANONYMOUS_COACH", &c.Quota.AnonymousCoach},
		{"QUOTA_SIGNED_IN", &c.Quota.SignedIn},
		{"RATE_LIMIT_DEFAULT_LIMIT", &c.RateLimit.DefaultLimit},
	}
	for _, v := range ints {
		if err := setInt(v.dst, v.key); err != nil {
			return err
		}
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"LLM_TIMEOUT", &c.LLM.Timeout},
		{"RATE_LIMIT_DEFAULT_WINDOW", &c.RateLimit.Window},
	}
	for _, v := range durations {
		if err := setDuration(v.dst, v.key); err != nil {
			return err
		}
	}

	if err := setBool(&c.LogDebug, "LOG_DEBUG"); err != nil {
		return err
	}
	if err := setBool(&c.RateLimit.Enabled, "RATE_LIMIT_ENABLED"); err != nil {
		return err
	}

	if value := os.Getenv("LLM_TEMPERATURE"); value != "" {
		temp, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return fmt.Errorf("invalid LLM_TEMPERATURE: %v", err)
		}
		c.LLM.Temperature = float32(temp)
	}

	return nil
}

func setString(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func setInt(dst *int, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %v", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %v", key, err)
	}
	*dst = b
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %v", key, err)
	}
	*dst = d
	return nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(list string) []string {
	var result []string
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
