package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: Remote booking API client configuration
//   - auth.go: Session and login configuration
//   - database.go: Redis configuration for the session store
//   - display.go: Timezone and locale used when rendering
//   - http.go: HTTP server configuration
//   - observability.go: Metrics and tracing configuration
type AppConfig struct {
	// IsDev controls development mode behavior (template reloading, caching, etc.)
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Session and login configuration
	Session SessionConfig

	// Redis backs the session store when SESSION_STORE=redis.
	Redis RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Remote booking API
	API APIConfig

	// Display formatting
	Display DisplayConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Session.Sanitize()
	c.API.Sanitize()
	c.Display.Sanitize()
	c.Observability.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// This is called by Sanitize() to ensure IsDev is set correctly.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// UsesRedis reports whether sessions are persisted in Redis.
func (c *AppConfig) UsesRedis() bool {
	return c.Session.Store == SessionStoreRedis
}
