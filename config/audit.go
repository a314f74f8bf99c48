package config

import "fmt"

// Audit backends.
const (
	AuditBackendNone   = "none"
	AuditBackendJSONL  = "jsonl"
	AuditBackendSQLite = "sqlite"
)

// AuditConfig selects where the assignment audit trail is persisted.
type AuditConfig struct {
	Backend string `json:"backend"`
	Path    string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *AuditConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = AuditBackendNone
	}
}

// Validate checks the settings.
func (c AuditConfig) Validate() error {
	switch c.Backend {
	case AuditBackendNone:
		return nil
	case AuditBackendJSONL, AuditBackendSQLite:
		if c.Path == "" {
			return fmt.Errorf("audit.path is required for backend %q", c.Backend)
		}
		return nil
	default:
		return fmt.Errorf("unknown audit backend: %s", c.Backend)
	}
}

// SeedConfig points to a JSON file with initial incidents and units.
type SeedConfig struct {
	Path string `json:"path"`
}
