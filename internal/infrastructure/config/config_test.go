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
		t.Fatalf("writing config: %v", err)
	}
	return path
}

const minimalConfig = `
gateway:
  name: test-gateway
  server: deviot.example.com:9000
  owner: tester
mqtt:
  broker:
    host: broker.local
    port: 1883
`

func TestLoadMinimal(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Gateway.Name != "test-gateway" {
		t.Errorf("Gateway.Name = %q, want test-gateway", cfg.Gateway.Name)
	}
	if cfg.Gateway.Server != "deviot.example.com:9000" {
		t.Errorf("Gateway.Server = %q", cfg.Gateway.Server)
	}
	// Defaults fill what the file omits.
	if cfg.Gateway.RegisterInterval != 5 {
		t.Errorf("RegisterInterval = %d, want default 5", cfg.Gateway.RegisterInterval)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging defaults = %s/%s, want info/json", cfg.Logging.Level, cfg.Logging.Format)
	}
	if cfg.MQTT.Broker.Host != "broker.local" {
		t.Errorf("MQTT.Broker.Host = %q", cfg.MQTT.Broker.Host)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "gateway: [broken")); err == nil {
		t.Error("Load() should fail for malformed YAML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DEVIOT_MQTT_HOST", "env-broker")
	t.Setenv("DEVIOT_MQTT_PORT", "8883")
	t.Setenv("DEVIOT_MQTT_PASSWORD", "secret")
	t.Setenv("DEVIOT_TELEMETRY_TOKEN", "tok-123")

	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MQTT.Broker.Host != "env-broker" {
		t.Errorf("MQTT.Broker.Host = %q, want env-broker", cfg.MQTT.Broker.Host)
	}
	if cfg.MQTT.Broker.Port != 8883 {
		t.Errorf("MQTT.Broker.Port = %d, want 8883", cfg.MQTT.Broker.Port)
	}
	if cfg.MQTT.Auth.Password != "secret" {
		t.Errorf("MQTT.Auth.Password = %q, want secret", cfg.MQTT.Auth.Password)
	}
	if cfg.Telemetry.Token != "tok-123" {
		t.Errorf("Telemetry.Token = %q, want tok-123", cfg.Telemetry.Token)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaultConfig()
		cfg.Gateway.Server = "deviot.example.com:9000"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing name", func(c *Config) { c.Gateway.Name = "" }, "gateway.name"},
		{"missing server", func(c *Config) { c.Gateway.Server = "" }, "gateway.server"},
		{"bad interval", func(c *Config) { c.Gateway.RegisterInterval = 0 }, "register_interval"},
		{"missing broker host", func(c *Config) { c.MQTT.Broker.Host = "" }, "mqtt.broker.host"},
		{"bad port", func(c *Config) { c.MQTT.Broker.Port = 70000 }, "mqtt.broker.port"},
		{"bad qos", func(c *Config) { c.MQTT.QoS = 3 }, "mqtt.qos"},
		{"state without path", func(c *Config) { c.State.Enabled = true; c.State.Path = "" }, "state.path"},
		{"telemetry without url", func(c *Config) { c.Telemetry.Enabled = true }, "telemetry.url"},
		{"telemetry without org", func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.URL = "http://influx:8086"
		}, "telemetry.org"},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
