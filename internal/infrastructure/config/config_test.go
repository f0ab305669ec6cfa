package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
server:
  host: "192.168.1.50"
  port: 3700
logging:
  level: "debug"
  format: "json"
history:
  enabled: true
  path: "/tmp/knxlink-test.db"
mqtt:
  enabled: true
  broker:
    host: "broker.local"
    port: 1883
  topic_prefix: "home/knx"
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "192.168.1.50" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "192.168.1.50")
	}
	if cfg.Server.Port != 3700 {
		t.Errorf("Server.Port = %d, want 3700", cfg.Server.Port)
	}
	if !cfg.History.Enabled || cfg.History.Path != "/tmp/knxlink-test.db" {
		t.Errorf("History = %+v", cfg.History)
	}
	if cfg.MQTT.TopicPrefix != "home/knx" {
		t.Errorf("MQTT.TopicPrefix = %q, want %q", cfg.MQTT.TopicPrefix, "home/knx")
	}
	// Unset values keep their defaults.
	if cfg.MQTT.QoS != 1 {
		t.Errorf("MQTT.QoS = %d, want default 1", cfg.MQTT.QoS)
	}
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 3672 {
		t.Errorf("Server = %+v, want 127.0.0.1:3672", cfg.Server)
	}
	if cfg.History.Enabled || cfg.MQTT.Enabled || cfg.InfluxDB.Enabled {
		t.Error("optional integrations should be disabled by default")
	}
	if strings.HasPrefix(cfg.History.Path, "~") {
		t.Errorf("History.Path = %q, want home directory expanded", cfg.History.Path)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "invalid: [yaml: content"))
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	content := `
server:
  port: 70000
`
	_, err := Load(writeConfig(t, content))
	if err == nil {
		t.Fatal("Load() expected validation error for port 70000, got nil")
	}
	if !strings.Contains(err.Error(), "server.port") {
		t.Errorf("error = %v, want mention of server.port", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("KNXLINK_SERVER_HOST", "10.0.0.9")
	t.Setenv("KNXLINK_SERVER_PORT", "4000")
	t.Setenv("KNXLINK_LOGGING_LEVEL", "debug")
	t.Setenv("KNXLINK_HISTORY_PATH", "/var/lib/knxlink/history.db")
	t.Setenv("KNXLINK_MQTT_HOST", "mqtt.example")
	t.Setenv("KNXLINK_MQTT_USERNAME", "knx")
	t.Setenv("KNXLINK_MQTT_PASSWORD", "secret")
	t.Setenv("KNXLINK_INFLUXDB_TOKEN", "token")

	content := `
server:
  host: "192.168.1.50"
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "10.0.0.9" {
		t.Errorf("Server.Host = %q, want env override", cfg.Server.Host)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want 4000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.History.Path != "/var/lib/knxlink/history.db" {
		t.Errorf("History.Path = %q", cfg.History.Path)
	}
	if cfg.MQTT.Broker.Host != "mqtt.example" || cfg.MQTT.Auth.Username != "knx" || cfg.MQTT.Auth.Password != "secret" {
		t.Errorf("MQTT = %+v", cfg.MQTT)
	}
	if cfg.InfluxDB.Token != "token" {
		t.Errorf("InfluxDB.Token = %q", cfg.InfluxDB.Token)
	}
}

func TestLoad_InvalidEnvPort(t *testing.T) {
	t.Setenv("KNXLINK_SERVER_PORT", "not-a-port")

	if _, err := Load(""); err == nil {
		t.Error("Load() expected error for non-numeric KNXLINK_SERVER_PORT")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := defaultConfig()
		cfg.History.Path = "/tmp/history.db"
		return cfg
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "empty host", modify: func(c *Config) { c.Server.Host = "" }, wantErr: true},
		{name: "port zero", modify: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "port too large", modify: func(c *Config) { c.Server.Port = 65536 }, wantErr: true},
		{name: "bad log format", modify: func(c *Config) { c.Logging.Format = "xml" }, wantErr: true},
		{name: "history without path", modify: func(c *Config) {
			c.History.Enabled = true
			c.History.Path = ""
		}, wantErr: true},
		{name: "bad qos", modify: func(c *Config) { c.MQTT.QoS = 3 }, wantErr: true},
		{name: "mqtt without prefix", modify: func(c *Config) {
			c.MQTT.Enabled = true
			c.MQTT.TopicPrefix = ""
		}, wantErr: true},
		{name: "influxdb without url", modify: func(c *Config) {
			c.InfluxDB.Enabled = true
			c.InfluxDB.URL = ""
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/knx")

	got, err := expandHome("~/data/history.db")
	if err != nil {
		t.Fatalf("expandHome() error = %v", err)
	}
	if got != "/home/knx/data/history.db" {
		t.Errorf("expandHome() = %q", got)
	}

	if got, _ := expandHome("/abs/path.db"); got != "/abs/path.db" {
		t.Errorf("expandHome(absolute) = %q", got)
	}
}
