package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "/tmp/ucr-test.db"
mqtt:
  broker:
    host: "broker.local"
    port: 8883
    client_id: "ucr-test"
  qos: 2
backend:
  topic_prefix: "rig"
  codec: "cbor"
profiles:
  file: "/etc/ucr/profiles.yaml"
  activate: "Default > Flight"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/ucr-test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/tmp/ucr-test.db")
	}
	if cfg.MQTT.Broker.Host != "broker.local" || cfg.MQTT.Broker.Port != 8883 {
		t.Errorf("MQTT.Broker = %+v, want broker.local:8883", cfg.MQTT.Broker)
	}
	if cfg.Backend.TopicPrefix != "rig" {
		t.Errorf("Backend.TopicPrefix = %q, want %q", cfg.Backend.TopicPrefix, "rig")
	}
	if cfg.Backend.Codec != CodecCBOR {
		t.Errorf("Backend.Codec = %q, want %q", cfg.Backend.Codec, CodecCBOR)
	}
	if cfg.Profiles.Activate != "Default > Flight" {
		t.Errorf("Profiles.Activate = %q, want %q", cfg.Profiles.Activate, "Default > Flight")
	}

	// Unset values keep their defaults.
	if cfg.API.Port != 8080 {
		t.Errorf("API.Port = %d, want default 8080", cfg.API.Port)
	}
	if cfg.Backend.RequestTimeout != 2000 {
		t.Errorf("Backend.RequestTimeout = %d, want default 2000", cfg.Backend.RequestTimeout)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "invalid: [yaml: content")); err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	_, err := Load(writeConfig(t, `
backend:
  codec: "xml"
`))
	if err == nil {
		t.Fatal("Load() expected validation error for unknown codec, got nil")
	}
	if !strings.Contains(err.Error(), "backend.codec") {
		t.Errorf("error %q does not mention backend.codec", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"missing database path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"invalid QoS", func(c *Config) { c.MQTT.QoS = 3 }, "mqtt.qos"},
		{"missing broker host", func(c *Config) { c.MQTT.Broker.Host = "" }, "mqtt.broker.host"},
		{"invalid broker port", func(c *Config) { c.MQTT.Broker.Port = 0 }, "mqtt.broker.port"},
		{"wildcard prefix", func(c *Config) { c.Backend.TopicPrefix = "ucr/#" }, "backend.topic_prefix"},
		{"empty prefix", func(c *Config) { c.Backend.TopicPrefix = "" }, "backend.topic_prefix"},
		{"unknown codec", func(c *Config) { c.Backend.Codec = "msgpack" }, "backend.codec"},
		{"zero request timeout", func(c *Config) { c.Backend.RequestTimeout = 0 }, "backend.request_timeout"},
		{"invalid api port high", func(c *Config) { c.API.Port = 70000 }, "api.port"},
		{"influx without url", func(c *Config) {
			c.InfluxDB.Enabled = true
			c.InfluxDB.Org = "home"
		}, "influxdb.url"},
		{"activate without file", func(c *Config) {
			c.Profiles.File = ""
			c.Profiles.Activate = "Default"
		}, "profiles.file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := defaultConfig()
	cfg.Database.Path = ""
	cfg.API.Port = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error, got nil")
	}
	for _, want := range []string{"database.path", "api.port"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestConfig_GetTimeouts(t *testing.T) {
	cfg := &Config{
		API:     APIConfig{Timeouts: APITimeoutConfig{Read: 30, Write: 45, Idle: 60}},
		Backend: BackendConfig{RequestTimeout: 1500},
	}

	if got := cfg.GetReadTimeout().Seconds(); got != 30 {
		t.Errorf("GetReadTimeout() = %v, want 30", got)
	}
	if got := cfg.GetWriteTimeout().Seconds(); got != 45 {
		t.Errorf("GetWriteTimeout() = %v, want 45", got)
	}
	if got := cfg.GetIdleTimeout().Seconds(); got != 60 {
		t.Errorf("GetIdleTimeout() = %v, want 60", got)
	}
	if got := cfg.GetRequestTimeout().Milliseconds(); got != 1500 {
		t.Errorf("GetRequestTimeout() = %vms, want 1500ms", got)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := defaultConfig()

	t.Setenv("UCR_DATABASE_PATH", "/custom/path.db")
	t.Setenv("UCR_MQTT_HOST", "mqtt.example.com")
	t.Setenv("UCR_MQTT_PORT", "8883")
	t.Setenv("UCR_MQTT_USERNAME", "testuser")
	t.Setenv("UCR_MQTT_PASSWORD", "testpass")
	t.Setenv("UCR_BACKEND_CODEC", "cbor")
	t.Setenv("UCR_API_PORT", "9090")
	t.Setenv("UCR_INFLUXDB_TOKEN", "secret-token")
	t.Setenv("UCR_INFLUXDB_ENABLED", "true")
	t.Setenv("UCR_PROFILES_ACTIVATE", "Default")

	if err := applyEnvOverrides(cfg); err != nil {
		t.Fatalf("applyEnvOverrides() error = %v", err)
	}

	if cfg.Database.Path != "/custom/path.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "/custom/path.db")
	}
	if cfg.MQTT.Broker.Host != "mqtt.example.com" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "mqtt.example.com")
	}
	if cfg.MQTT.Broker.Port != 8883 {
		t.Errorf("MQTT.Broker.Port = %d, want 8883", cfg.MQTT.Broker.Port)
	}
	if cfg.MQTT.Auth.Username != "testuser" || cfg.MQTT.Auth.Password != "testpass" {
		t.Errorf("MQTT.Auth = %+v, want testuser/testpass", cfg.MQTT.Auth)
	}
	if cfg.Backend.Codec != CodecCBOR {
		t.Errorf("Backend.Codec = %q, want %q", cfg.Backend.Codec, CodecCBOR)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("API.Port = %d, want 9090", cfg.API.Port)
	}
	if cfg.InfluxDB.Token != "secret-token" || !cfg.InfluxDB.Enabled {
		t.Errorf("InfluxDB = %+v, want enabled with token", cfg.InfluxDB)
	}
	if cfg.Profiles.Activate != "Default" {
		t.Errorf("Profiles.Activate = %q, want %q", cfg.Profiles.Activate, "Default")
	}
}

func TestApplyEnvOverrides_BadNumber(t *testing.T) {
	t.Setenv("UCR_API_PORT", "eighty")

	if err := applyEnvOverrides(defaultConfig()); err == nil {
		t.Error("applyEnvOverrides() expected error for non-numeric port, got nil")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig should validate, got %v", err)
	}
	if cfg.MQTT.Broker.Port != 1883 {
		t.Errorf("defaultConfig MQTT.Broker.Port = %d, want 1883", cfg.MQTT.Broker.Port)
	}
	if cfg.Backend.Codec != CodecJSON {
		t.Errorf("defaultConfig Backend.Codec = %q, want %q", cfg.Backend.Codec, CodecJSON)
	}
}
