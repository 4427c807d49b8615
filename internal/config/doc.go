// Package config loads and watches the exporter configuration file (config.yaml).
//
// Top-level types:
//   - Config{Exporter, Device, Log}: full config tree parsed from YAML
//   - ExporterConfig: listen_address, metrics_path, telemetry_path, namespace
//   - DeviceConfig: endpoint (base URL of the modem web UI), timeout, tls
//   - LogConfig: level (debug|info|warn|error), format (json|text)
//
// Load(path) reads the YAML file, applies defaults (listen 0.0.0.0:9091,
// device http://192.168.8.1, 10s timeout, namespace "modem"), then validates
// URLs, paths and enums. Default() returns the same defaults without a file.
//
// Watch(ctx, path, onChange) uses fsnotify to detect file changes and calls
// onChange with the newly parsed Config. It handles the rename→create pattern
// used by atomic-save editors (vim, VS Code) by re-adding the watch after
// each reload.
package config
