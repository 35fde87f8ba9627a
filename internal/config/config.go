// Package config loads server and CLI configuration from an optional YAML
// file and the environment. Environment variables win over the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store backends for quota counters.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config is the full application configuration.
type Config struct {
	Port           int      `yaml:"port"`
	DatabaseURL    string   `yaml:"database_url"`
	Store          string   `yaml:"store"` // memory or postgres
	LogDebug       bool     `yaml:"log_debug"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	LLM       LLMConfig       `yaml:"llm"`
	Owner     OwnerConfig     `yaml:"owner"`
	JWT       JWTConfig       `yaml:"jwt"`
	Password  PasswordConfig  `yaml:"password"`
	Quota     QuotaConfig     `yaml:"quota"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// LLMConfig configures the optional coaching model. An empty APIKey disables it.
type LLMConfig struct {
	APIKey      string        `yaml:"api_key"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// OwnerConfig identifies the single account that bypasses quotas.
type OwnerConfig struct {
	Email        string `yaml:"email"`
	PasswordHash string `yaml:"password_hash"`
}

// QuotaConfig holds the daily allowances.
type QuotaConfig struct {
	AnonymousScore int `yaml:"anonymous_score"`
	AnonymousCoach int `yaml:"anonymous_coach"`
	SignedIn       int `yaml:"signed_in"`
}

// RateLimitConfig configures per-IP abuse limiting.
type RateLimitConfig struct {
	Enabled      bool          `yaml:"enabled"`
	DefaultLimit int           `yaml:"default_limit"`
	Window       time.Duration `yaml:"window"`
	Whitelist    []string      `yaml:"whitelist"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:           8080,
		Store:          StoreMemory,
		AllowedOrigins: []string{"*"},
		LLM: LLMConfig{
			Temperature: 0.7,
			Timeout:     20 * time.Second,
		},
		JWT:      JWTConfig{ExpirationHours: 24},
		Password: PasswordConfig{BcryptCost: 12},
		Quota: QuotaConfig{
			AnonymousScore: 2,
			AnonymousCoach: 2,
			SignedIn:       3,
		},
		RateLimit: RateLimitConfig{
			Enabled:      true,
			DefaultLimit: 120,
			Window:       time.Minute,
		},
	}
}

// Load reads the YAML file at path (if any) over the defaults, applies
// environment overrides and validates the result. JSON files parse too.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile parses a configuration file without applying defaults.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}

	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required when store is %q", StorePostgres)
		}
	default:
		return fmt.Errorf("config error: unknown store %q (want %q or %q)", c.Store, StoreMemory, StorePostgres)
	}

	if c.Quota.AnonymousScore < 0 || c.Quota.AnonymousCoach < 0 || c.Quota.SignedIn < 0 {
		return fmt.Errorf("config error: quota limits must be non-negative")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("config error: 'llm.temperature' must be between 0 and 2")
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("config error: 'llm.timeout' must be non-negative")
	}
	if c.RateLimit.Enabled && (c.RateLimit.DefaultLimit <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("config error: rate limit needs a positive 'default_limit' and 'window'")
	}

	if c.Owner.Email != "" && c.Owner.PasswordHash == "" {
		return fmt.Errorf("config error: 'owner.password_hash' is required when 'owner.email' is set")
	}
	if c.Owner.Email != "" && c.JWT.Secret == "" {
		return fmt.Errorf("config error: 'jwt.secret' is required when an owner is configured")
	}
	if c.JWT.Secret != "" {
		if err := c.JWT.validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if err := c.Password.validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Store == "" {
		result.Store = defaults.Store
	}
	if result.LLM.APIKey == "" {
		result.LLM.APIKey = defaults.LLM.APIKey
	}
	if result.LLM.Model == "" {
		result.LLM.Model = defaults.LLM.Model
	}
	if result.Owner.Email == "" {
		result.Owner.Email = defaults.Owner.Email
	}
	if result.Owner.PasswordHash == "" {
		result.Owner.PasswordHash = defaults.Owner.PasswordHash
	}
	if result.JWT.Secret == "" {
		result.JWT.Secret = defaults.JWT.Secret
	}
	if result.Password.Pepper == "" {
		result.Password.Pepper = defaults.Password.Pepper
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.LLM.Temperature == 0 {
		result.LLM.Temperature = defaults.LLM.Temperature
	}
	if result.LLM.Timeout == 0 {
		result.LLM.Timeout = defaults.LLM.Timeout
	}
	if result.JWT.ExpirationHours == 0 {
		result.JWT.ExpirationHours = defaults.JWT.ExpirationHours
	}
	if result.Password.BcryptCost == 0 {
		result.Password.BcryptCost = defaults.Password.BcryptCost
	}
	if result.Quota.AnonymousScore == 0 {
		result.Quota.AnonymousScore = defaults.Quota.AnonymousScore
	}
	if result.Quota.AnonymousCoach == 0 {
		result.Quota.AnonymousCoach = defaults.Quota.AnonymousCoach
	}
	if result.Quota.SignedIn == 0 {
		result.Quota.SignedIn = defaults.Quota.SignedIn
	}
	if result.RateLimit.DefaultLimit == 0 {
		result.RateLimit.DefaultLimit = defaults.RateLimit.DefaultLimit
	}
	if result.RateLimit.Window == 0 {
		result.RateLimit.Window = defaults.RateLimit.Window
	}

	// Slices: use default if empty
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}

	// Bools cannot distinguish unset from false; a file that sets none of the
	// rate limit fields keeps the default switch.
	rl := c.RateLimit
	if !rl.Enabled && rl.DefaultLimit == 0 && rl.Window == 0 && len(rl.Whitelist) == 0 {
		result.RateLimit.Enabled = defaults.RateLimit.Enabled
	}

	return result
}

// LLMEnabled reports whether a coaching model is configured.
func (c *Config) LLMEnabled() bool {
	return strings.TrimSpace(c.LLM.APIKey) != ""
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
