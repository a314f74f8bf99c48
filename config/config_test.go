package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `api:
  addr: ":9090"
mqtt:
  enabled: true
  broker: "tcp://localhost:1883"
  client_id: "dispatch"
  username: "user"
  password: "pass"
  use_tls: false
dispatch:
  average_speed_kmh: 40
  max_candidates: 5
metrics:
  prometheus_enabled: true
  prometheus_port: ":2112"
audit:
  backend: "jsonl"
  path: "/tmp/audit.jsonl"
seed:
  path: "seed.json"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"api.addr", cfg.API.Addr, ":9090"},
		{"mqtt.enabled", cfg.MQTT.Enabled, true},
		{"broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"client_id", cfg.MQTT.ClientID, "dispatch"},
		{"username", cfg.MQTT.Username, "user"},
		{"use_tls", cfg.MQTT.UseTLS, false},
		{"average_speed_kmh", cfg.Dispatch.AverageSpeedKmh, 40.0},
		{"max_candidates", cfg.Dispatch.MaxCandidates, 5},
		{"prometheus_enabled", cfg.Metrics.PrometheusEnabled, true},
		{"prometheus_port", cfg.Metrics.PrometheusPort, ":2112"},
		{"audit.backend", cfg.Audit.Backend, "jsonl"},
		{"audit.path", cfg.Audit.Path, "/tmp/audit.jsonl"},
		{"seed.path", cfg.Seed.Path, "seed.json"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.API.Addr != ":8080" {
		t.Errorf("default addr: %s", cfg.API.Addr)
	}
	if cfg.Dispatch.AverageSpeedKmh != 50 {
		t.Errorf("default speed: %v", cfg.Dispatch.AverageSpeedKmh)
	}
	if cfg.Audit.Backend != AuditBackendNone {
		t.Errorf("default audit backend: %s", cfg.Audit.Backend)
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(``), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestLoadRejectsBadAuditBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "audit:\n  backend: \"oracle\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown audit backend")
	}
}
