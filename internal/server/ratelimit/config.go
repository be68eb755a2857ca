package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits one method on one path (exact, or prefix when Path ends in "/").
type Rule struct {
	Path   string
	Method string
	Limit  int           // Maximum requests per window; 0 means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

func (r *Rule) burst() int {
	if r.Burst > 0 {
		return r.Burst
	}
	return r.Limit
}

// key groups every path matched by a prefix rule into one bucket.
func (r *Rule) key(path string) string {
	if r.Path != "" {
		return r.Path
	}
	return path
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled       bool
	DefaultLimit  int
	DefaultWindow time.Duration
	IdleTimeout   time.Duration
	Whitelist     map[string]bool
	Rules         []Rule
}

// DefaultConfig returns the built-in limits.
func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  600,
		DefaultWindow: time.Minute,
		IdleTimeout:   time.Hour,
		Whitelist:     make(map[string]bool),
		Rules:         DefaultRules(),
	}
}

// DefaultRules returns the endpoint-specific limits.
func DefaultRules() []Rule {
	return []Rule{
		// Irreversible
		{Path: "/reset", Method: "POST", Limit: 5, Window: time.Minute, Burst: 2},

		// Writes
		{Path: "/content", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/content/", Method: "PUT", Limit: 240, Window: time.Minute, Burst: 40},
		{Path: "/content/", Method: "DELETE", Limit: 240, Window: time.Minute, Burst: 40},
		{Path: "/steps/", Method: "PUT", Limit: 240, Window: time.Minute, Burst: 40},

		// Unlimited
		{Path: "/health", Method: "GET", Limit: 0},
		{Path: "/metrics", Method: "GET", Limit: 0},
	}
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = getEnvBool("TOOLKIT_RATE_LIMIT_ENABLED", cfg.Enabled)
	cfg.DefaultLimit = getEnvInt("TOOLKIT_RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = getEnvDuration("TOOLKIT_RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.Whitelist = parseIPList(os.Getenv("TOOLKIT_RATE_LIMIT_WHITELIST"))
	return cfg
}

// MatchRule returns the first exact rule for method+path, else the first
// prefix rule, else nil.
func MatchRule(path, method string, rules []Rule) *Rule {
	for i := range rules {
		if rules[i].Method == method && rules[i].Path == path {
			return &rules[i]
		}
	}
	for i := range rules {
		r := &rules[i]
		if r.Method == method && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return r
		}
	}
	return nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
