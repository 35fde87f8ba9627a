package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "DATABASE_URL", "ATS_STORE", "GEMINI_API_KEY", "LLM_MODEL", "LLM_TIMEOUT",
	"LLM_TEMPERATURE", "OWNER_EMAIL", "OWNER_PASSWORD_HASH", "JWT_SECRET",
	"JWT_EXPIRATION_HOURS", "BCRYPT_COST", "PASSWORD_PEPPER", "ALLOWED_ORIGINS",
	"QUOTA_ANONYMOUS_SCORE", "QUOTA_ANONYMOUS_COACH", "QUOTA_SIGNED_IN",
	"RATE_LIMIT_ENABLED", "RATE_LIMIT_DEFAULT_LIMIT", "RATE_LIMIT_DEFAULT_WINDOW",
	"RATE_LIMIT_WHITELIST", "LOG_DEBUG",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, 2, cfg.Quota.AnonymousScore)
	assert.Equal(t, 2, cfg.Quota.AnonymousCoach)
	assert.Equal(t, 3, cfg.Quota.SignedIn)
	assert.Equal(t, 20*time.Second, cfg.LLM.Timeout)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.False(t, cfg.LLMEnabled())
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "ats.yaml", `
port: 9090
store: postgres
database_url: postgres://localhost/ats
allowed_origins: [https://example.com]
llm:
  api_key: test-key
  timeout: 5s
quota:
  anonymous_score: 4
rate_limit:
  enabled: true
  default_limit: 30
  window: 30s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, "postgres://localhost/ats", cfg.DatabaseURL)
	assert.Equal(t, []string{"https://example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.True(t, cfg.LLMEnabled())
	assert.Equal(t, 4, cfg.Quota.AnonymousScore)
	assert.Equal(t, 2, cfg.Quota.AnonymousCoach, "unset fields keep defaults")
	assert.Equal(t, 30, cfg.RateLimit.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
}

func TestLoad_JSONFileParses(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "ats.json", `{"port": 7000, "quota": {"signed_in": 10}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, 10, cfg.Quota.SignedIn)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "ats.yaml", "port: 9090\nlog_debug: false\n")
	t.Setenv("PORT", "9191")
	t.Setenv("LOG_DEBUG", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("QUOTA_SIGNED_IN", "7")
	t.Setenv("LLM_TIMEOUT", "3s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Port)
	assert.True(t, cfg.LogDebug)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 7, cfg.Quota.SignedIn)
	assert.Equal(t, 3*time.Second, cfg.LLM.Timeout)
}

func TestLoad_InvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "eighty")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PORT")
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "bad.yaml", "port: [unclosed")

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadFile_NotFound(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFile_EmptyPath(t *testing.T) {
	_, err := LoadFile("")
	assert.EqualError(t, err, "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Port = 70000 },
			wantErr: "'port'",
		},
		{
			name:    "postgres without url",
			mutate:  func(c *Config) { c.Store = StorePostgres },
			wantErr: "'database_url'",
		},
		{
			name:    "unknown store",
			mutate:  func(c *Config) { c.Store = "redis" },
			wantErr: "unknown store",
		},
		{
			name:    "negative quota",
			mutate:  func(c *Config) { c.Quota.SignedIn = -1 },
			wantErr: "non-negative",
		},
		{
			name:    "owner without hash",
			mutate:  func(c *Config) { c.Owner.Email = "owner@example.com" },
			wantErr: "password_hash",
		},
		{
			name: "owner without jwt secret",
			mutate: func(c *Config) {
				c.Owner = OwnerConfig{Email: "owner@example.com", PasswordHash: "$2a$10$x"}
			},
			wantErr: "jwt.secret",
		},
		{
			name:    "short jwt secret",
			mutate:  func(c *Config) { c.JWT.Secret = "short" },
			wantErr: "at least 16",
		},
		{
			name:    "bcrypt cost too high",
			mutate:  func(c *Config) { c.Password.BcryptCost = 20 },
			wantErr: "bcrypt_cost",
		},
		{
			name:    "rate limit without window",
			mutate:  func(c *Config) { c.RateLimit.Window = 0 },
			wantErr: "rate limit",
		},
		{
			name:   "disabled rate limit needs no window",
			mutate: func(c *Config) { c.RateLimit = RateLimitConfig{} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Default()
	partial := Config{Port: 9000, Quota: QuotaConfig{AnonymousCoach: 5}}

	merged := partial.MergeWithDefaults(defaults)

	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, 5, merged.Quota.AnonymousCoach)
	assert.Equal(t, defaults.Quota.AnonymousScore, merged.Quota.AnonymousScore)
	assert.Equal(t, defaults.Store, merged.Store)
	assert.Equal(t, defaults.AllowedOrigins, merged.AllowedOrigins)
	assert.True(t, merged.RateLimit.Enabled)
}

func TestMergeWithDefaults_RateLimitExplicitlyDisabled(t *testing.T) {
	partial := Config{RateLimit: RateLimitConfig{Enabled: false, DefaultLimit: 10}}

	merged := partial.MergeWithDefaults(Default())

	assert.False(t, merged.RateLimit.Enabled)
	assert.Equal(t, 10, merged.RateLimit.DefaultLimit)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
	assert.Nil(t, splitList(""))
}
