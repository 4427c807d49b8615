package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Valid(t *testing.T) {
	yaml := `
exporter:
  listen_address: "127.0.0.1:9200"
  metrics_path: /probe
  namespace: lte
device:
  endpoint: "https://192.168.1.1"
  timeout: 3s
  tls:
    insecure_skip_verify: true
log:
  level: debug
  format: text
`
	cfg := loadFromString(t, yaml)

	if cfg.Exporter.ListenAddress != "127.0.0.1:9200" {
		t.Errorf("listen_address: got %q", cfg.Exporter.ListenAddress)
	}
	if cfg.Exporter.MetricsPath != "/probe" {
		t.Errorf("metrics_path: got %q", cfg.Exporter.MetricsPath)
	}
	if cfg.Exporter.Namespace != "lte" {
		t.Errorf("namespace: got %q", cfg.Exporter.Namespace)
	}
	if cfg.Device.Endpoint != "https://192.168.1.1" {
		t.Errorf("device.endpoint: got %q", cfg.Device.Endpoint)
	}
	if cfg.Device.Timeout != 3*time.Second {
		t.Errorf("device.timeout: got %v", cfg.Device.Timeout)
	}
	if !cfg.Device.TLS.InsecureSkipVerify {
		t.Error("device.tls.insecure_skip_verify: got false")
	}
	if cfg.Log.SlogLevel() != slog.LevelDebug {
		t.Errorf("log level: got %v", cfg.Log.SlogLevel())
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log format: got %q", cfg.Log.Format)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := loadFromString(t, "{}\n")

	if cfg.Exporter.ListenAddress != DefaultListenAddress {
		t.Errorf("default listen_address: got %q, want %q", cfg.Exporter.ListenAddress, DefaultListenAddress)
	}
	if cfg.Exporter.MetricsPath != DefaultMetricsPath {
		t.Errorf("default metrics_path: got %q, want %q", cfg.Exporter.MetricsPath, DefaultMetricsPath)
	}
	if cfg.Exporter.TelemetryPath != DefaultTelemetryPath {
		t.Errorf("default telemetry_path: got %q, want %q", cfg.Exporter.TelemetryPath, DefaultTelemetryPath)
	}
	if cfg.Exporter.Namespace != DefaultNamespace {
		t.Errorf("default namespace: got %q, want %q", cfg.Exporter.Namespace, DefaultNamespace)
	}
	if cfg.Device.Endpoint != DefaultDeviceEndpoint {
		t.Errorf("default device.endpoint: got %q, want %q", cfg.Device.Endpoint, DefaultDeviceEndpoint)
	}
	if cfg.Device.Timeout != DefaultDeviceTimeout {
		t.Errorf("default device.timeout: got %v, want %v", cfg.Device.Timeout, DefaultDeviceTimeout)
	}
	if cfg.Log.SlogLevel() != slog.LevelInfo {
		t.Errorf("default log level: got %v", cfg.Log.SlogLevel())
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := validate(Default()); err != nil {
		t.Fatalf("validate(Default()) = %v", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad listen address", "exporter:\n  listen_address: \"9091\"\n"},
		{"relative metrics path", "exporter:\n  metrics_path: metrics\n"},
		{"root metrics path", "exporter:\n  metrics_path: /\n"},
		{"reserved telemetry path", "exporter:\n  telemetry_path: /healthz\n"},
		{"same paths", "exporter:\n  metrics_path: /m\n  telemetry_path: /m\n"},
		{"bad namespace", "exporter:\n  namespace: \"my-modem\"\n"},
		{"ftp endpoint", "device:\n  endpoint: \"ftp://192.168.8.1\"\n"},
		{"endpoint without host", "device:\n  endpoint: \"http://\"\n"},
		{"zero timeout", "device:\n  timeout: 0s\n"},
		{"unknown log level", "log:\n  level: verbose\n"},
		{"unknown log format", "log:\n  format: xml\n"},
		{"broken yaml", "exporter: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := loadStringErr(t, tc.yaml); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLogConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			if got := (LogConfig{Level: tc.level}).SlogLevel(); got != tc.want {
				t.Errorf("SlogLevel(%q) = %v, want %v", tc.level, got, tc.want)
			}
		})
	}
}

// loadFromString writes yaml to a temp file and calls Load, failing on error.
func loadFromString(t *testing.T, content string) *Config {
	t.Helper()
	cfg, err := loadStringErr(t, content)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	return cfg
}

// loadStringErr writes yaml to a temp file and calls Load, returning any error.
func loadStringErr(t *testing.T, content string) (*Config, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return Load(path)
}
