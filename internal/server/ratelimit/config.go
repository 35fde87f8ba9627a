package ratelimit

import (
	"strings"
	"time"

	"github.com/jonathan/ats-ranker/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// defaultCleanupInterval is how often idle client limiters are dropped.
const defaultCleanupInterval = 5 * time.Minute

// NewConfig builds a limiter configuration from the application settings.
func NewConfig(rl config.RateLimitConfig) *Config {
	if !rl.Enabled {
		return &Config{Enabled: false}
	}

	limit := rl.DefaultLimit
	if limit <= 0 {
		limit = 120
	}
	window := rl.Window
	if window <= 0 {
		window = time.Minute
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    limit,
		DefaultWindow:   window,
		CleanupInterval: defaultCleanupInterval,
		Whitelist:       parseIPList(rl.Whitelist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
// These guard against bursts; daily allowances are enforced by the quota gate.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: Model calls and credential checks (strictest limits)
		{Path: "/api/ats/coach", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		{Path: "/api/auth/owner", Method: "POST", Limit: 5, Window: time.Minute, Burst: 2},

		// Tier 2: CPU-bound scoring and uploads (moderate limits)
		{Path: "/api/ats/score", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},
		{Path: "/api/ats/rank", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		{Path: "/api/extract", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/api/usage/consume", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},

		// Tier 3: Read operations (more lenient) - handled by default limit
		// Tier 4: Health check (unlimited) - handled by special case in matcher
	}
}

// parseIPList turns a list of IP addresses into a lookup set.
func parseIPList(list []string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range list {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
