package config

import "time"

// AppConfig holds the application configuration
type AppConfig struct {
	// BackendBaseURL is the root of the hospital backend REST API.
	BackendBaseURL string
	// RedisAddress locates the session store.
	RedisAddress string
	// SessionKey encrypts portal session cookies; must be 32 bytes.
	SessionKey string
	// ListenAddress is the portal's own bind address.
	ListenAddress string
	// DisplayShift is added to every backend timestamp after parsing. It
	// compensates for a backend deployed in a timezone other than the one
	// the portal displays; zero means backend times are shown as-is.
	DisplayShift time.Duration
}

// GetSessionKey returns the SessionKey from the config
func (c *AppConfig) GetSessionKey() string {
	return c.SessionKey
}
