package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/prometheus/common/model"
	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultListenAddress  = "0.0.0.0:9091"
	DefaultMetricsPath    = "/metrics"
	DefaultTelemetryPath  = "/exporter/metrics"
	DefaultNamespace      = "modem"
	DefaultDeviceEndpoint = "http://192.168.8.1"
	DefaultDeviceTimeout  = 10 * time.Second
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "json"
)

// Config is the top-level exporter configuration.
// Fields map 1:1 to config.example.yaml.
type Config struct {
	Exporter ExporterConfig `yaml:"exporter"`
	Device   DeviceConfig   `yaml:"device"`
	Log      LogConfig      `yaml:"log"`
}

// ExporterConfig holds the settings of the HTTP side facing Prometheus.
type ExporterConfig struct {
	// ListenAddress is the host:port the HTTP server binds.
	ListenAddress string `yaml:"listen_address"`

	// MetricsPath serves the device metrics; every request triggers a scrape.
	MetricsPath string `yaml:"metrics_path"`

	// TelemetryPath serves the exporter's own metrics (scrape counts, Go runtime).
	TelemetryPath string `yaml:"telemetry_path"`

	// Namespace prefixes every device metric name, e.g. modem_transferred_bytes.
	Namespace string `yaml:"namespace"`
}

// DeviceConfig describes the modem whose web API is scraped.
type DeviceConfig struct {
	// Endpoint is the base URL of the device web UI, without a trailing path.
	Endpoint string `yaml:"endpoint"`

	// Timeout bounds each individual request to the device.
	Timeout time.Duration `yaml:"timeout"`

	// TLS holds optional TLS dial options, used for https endpoints only.
	TLS TLSConfig `yaml:"tls"`
}

// TLSConfig holds TLS dial options for the device connection.
type TLSConfig struct {
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`

	// CAFile is an optional PEM bundle used to verify the device certificate.
	CAFile string `yaml:"ca_file"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	// Level is one of: debug | info | warn | error.
	Level string `yaml:"level"`

	// Format is one of: json | text.
	Format string `yaml:"format"`
}

// SlogLevel maps Level onto a slog.Level. Unknown values map to info;
// validate rejects them before this is reached.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config pre-populated with default values. It is what the
// exporter runs with when no config file is given.
func Default() *Config {
	return &Config{
		Exporter: ExporterConfig{
			ListenAddress: DefaultListenAddress,
			MetricsPath:   DefaultMetricsPath,
			TelemetryPath: DefaultTelemetryPath,
			Namespace:     DefaultNamespace,
		},
		Device: DeviceConfig{
			Endpoint: DefaultDeviceEndpoint,
			Timeout:  DefaultDeviceTimeout,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if _, _, err := net.SplitHostPort(cfg.Exporter.ListenAddress); err != nil {
		return fmt.Errorf("exporter.listen_address %q: %w", cfg.Exporter.ListenAddress, err)
	}
	if !strings.HasPrefix(cfg.Exporter.MetricsPath, "/") {
		return fmt.Errorf("exporter.metrics_path must start with /")
	}
	if !strings.HasPrefix(cfg.Exporter.TelemetryPath, "/") {
		return fmt.Errorf("exporter.telemetry_path must start with /")
	}
	if cfg.Exporter.MetricsPath == cfg.Exporter.TelemetryPath {
		return fmt.Errorf("exporter.metrics_path and exporter.telemetry_path must differ")
	}
	for _, p := range []string{cfg.Exporter.MetricsPath, cfg.Exporter.TelemetryPath} {
		if p == "/" || p == "/healthz" {
			return fmt.Errorf("exporter path %q is reserved", p)
		}
	}
	if !model.IsValidMetricName(model.LabelValue(cfg.Exporter.Namespace)) {
		return fmt.Errorf("exporter.namespace %q is not a valid metric name prefix", cfg.Exporter.Namespace)
	}

	u, err := url.Parse(cfg.Device.Endpoint)
	if err != nil {
		return fmt.Errorf("device.endpoint: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("device.endpoint %q: scheme must be http or https", cfg.Device.Endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("device.endpoint %q: host is required", cfg.Device.Endpoint)
	}
	if cfg.Device.Timeout <= 0 {
		return fmt.Errorf("device.timeout must be positive")
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format: unknown format %q", cfg.Log.Format)
	}
	return nil
}
