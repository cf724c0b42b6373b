// Package adminapi provides a Go client for the user-administration
// HTTP API: authentication, user CRUD, and aggregate statistics.
package adminapi

import "time"

// DefaultBaseURL is the local development API endpoint.
const DefaultBaseURL = "http://localhost:8000/api"

// Default client settings.
const (
	DefaultTimeout = 30 * time.Second
)

// Config holds all configuration for the API client.
type Config struct {
	// BaseURL is the root of the API, without a trailing slash.
	BaseURL string

	// Timeout is the HTTP client timeout for each request.
	Timeout time.Duration
}

// DefaultConfig returns a Config with local development defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// WithBaseURL returns a copy of the config with the specified base URL.
func (c Config) WithBaseURL(url string) Config {
	c.BaseURL = url
	return c
}

// WithTimeout returns a copy of the config with the specified timeout.
func (c Config) WithTimeout(timeout time.Duration) Config {
	c.Timeout = timeout
	return c
}
