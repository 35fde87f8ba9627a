package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     JWTConfig
		wantErr string
	}{
		{name: "valid", cfg: JWTConfig{Secret: "0123456789abcdef-secret", ExpirationHours: 24}},
		{name: "minimum secret", cfg: JWTConfig{Secret: "0123456789abcdef", ExpirationHours: 1}},
		{name: "short secret", cfg: JWTConfig{Secret: "tiny", ExpirationHours: 24}, wantErr: "at least 16 characters"},
		{name: "zero expiration", cfg: JWTConfig{Secret: "0123456789abcdef", ExpirationHours: 0}, wantErr: "expiration_hours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestJWTConfig_ExpirationAndEnabled(t *testing.T) {
	cfg := JWTConfig{Secret: "0123456789abcdef", ExpirationHours: 2}
	assert.Equal(t, 2*time.Hour, cfg.Expiration())
	assert.True(t, cfg.Enabled())
	assert.False(t, (&JWTConfig{ExpirationHours: 24}).Enabled())
}

func TestJWTConfig_FromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret-0123456789")
	t.Setenv("JWT_EXPIRATION_HOURS", "6")

	cfg := Default()
	require.NoError(t, cfg.applyEnv())
	assert.Equal(t, "env-secret-0123456789", cfg.JWT.Secret)
	assert.Equal(t, 6*time.Hour, cfg.JWT.Expiration())
}
