package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionStoreKind selects the backing store for browser sessions.
type SessionStoreKind string

const (
	// SessionStoreMemory keeps sessions in process memory (development and tests).
	SessionStoreMemory SessionStoreKind = "memory"
	// SessionStoreRedis keeps sessions in Redis so multiple replicas share them.
	SessionStoreRedis SessionStoreKind = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionStoreKind.
func (k *SessionStoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "memory", "redis":
		*k = SessionStoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionStoreKind: %q (valid options: memory, redis)", v)
	}
}

const (
	defaultSessionTTL        = 24 * time.Hour
	defaultSessionCookieName = "session_id"
)

// SessionConfig groups browser-session and login configuration.
type SessionConfig struct {
	// Store determines where sessions (bearer token plus identity) live.
	Store SessionStoreKind `env:"SESSION_STORE" envDefault:"memory"`

	// TTL bounds how long a session survives without a new login.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// CookieName is the browser cookie carrying the opaque session id.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session_id"`

	// LoginRatePerMinute caps login attempts per client address. Zero disables the limiter.
	LoginRatePerMinute int `env:"LOGIN_RATE_PER_MINUTE" envDefault:"10"`
}

// Sanitize applies safe defaults to session configuration.
func (s *SessionConfig) Sanitize() {
	if s.TTL <= 0 {
		s.TTL = defaultSessionTTL
	}
	if s.CookieName = strings.TrimSpace(s.CookieName); s.CookieName == "" {
		s.CookieName = defaultSessionCookieName
	}
	if s.Store == "" {
		s.Store = SessionStoreMemory
	}
	if s.LoginRatePerMinute < 0 {
		s.LoginRatePerMinute = 0
	}
}
