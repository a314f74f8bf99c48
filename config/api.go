package config

import "fmt"

// APIConfig holds the HTTP API server settings.
type APIConfig struct {
	Addr            string `json:"addr"`
	ShutdownTimeout int    `json:"shutdown_timeout_s"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 5
	}
}

// Validate checks the settings.
func (c APIConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("api.addr must not be empty")
	}
	return nil
}
