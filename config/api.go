package config

import (
	"strings"
	"time"
)

const (
	defaultAPIURL           = "http://localhost:5000/api"
	defaultAPITimeout       = 15 * time.Second
	defaultErrorMessagePath = "message || error || msg"
)

// APIConfig configures the client for the remote booking API.
type APIConfig struct {
	// BaseURL is the API root, including the /api path segment.
	BaseURL string `env:"API_URL" envDefault:"http://localhost:5000/api"`

	// Timeout bounds every outbound request.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`

	// ErrorMessagePath is a JMESPath expression selecting the human-readable
	// message from an error response body.
	ErrorMessagePath string `env:"API_ERROR_MESSAGE_PATH" envDefault:"message || error || msg"`
}

// Sanitize trims the base URL and restores defaults for empty values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if a.BaseURL == "" {
		a.BaseURL = defaultAPIURL
	}
	if a.Timeout <= 0 {
		a.Timeout = defaultAPITimeout
	}
	if a.ErrorMessagePath = strings.TrimSpace(a.ErrorMessagePath); a.ErrorMessagePath == "" {
		a.ErrorMessagePath = defaultErrorMessagePath
	}
}
