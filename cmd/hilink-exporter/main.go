package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/obsidianstack/hilink-exporter/internal/api"
	"github.com/obsidianstack/hilink-exporter/internal/collector"
	"github.com/obsidianstack/hilink-exporter/internal/config"
	"github.com/obsidianstack/hilink-exporter/internal/modem"
)

func main() {
	configPath := flag.String("config", "", "path to config file; built-in defaults are used when empty")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	level := new(slog.LevelVar)
	level.Set(cfg.Log.SlogLevel())
	slog.SetDefault(slog.New(newLogHandler(os.Stdout, cfg.Log.Format, level)))

	slog.Info("hilink-exporter starting", "config", *configPath)
	slog.Info("config loaded",
		"listen_address", cfg.Exporter.ListenAddress,
		"metrics_path", cfg.Exporter.MetricsPath,
		"device", cfg.Device.Endpoint,
		"device_timeout", cfg.Device.Timeout,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	device, err := modem.New(cfg.Device)
	if err != nil {
		slog.Error("failed to build device client", "err", err)
		os.Exit(1)
	}

	handler := api.New(device, collector.New(cfg.Exporter.Namespace), api.Options{
		MetricsPath:   cfg.Exporter.MetricsPath,
		TelemetryPath: cfg.Exporter.TelemetryPath,
	})

	// Hot reload swaps the device client and log level. Listen address,
	// paths and namespace need a restart.
	if *configPath != "" {
		go func() {
			if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
				level.Set(updated.Log.SlogLevel())
				next, err := modem.New(updated.Device)
				if err != nil {
					slog.Error("config hot-reload: keeping previous device", "err", err)
					return
				}
				if prev, ok := handler.SetSource(next).(interface{ Close() }); ok {
					prev.Close()
				}
				slog.Info("config hot-reloaded",
					"device", updated.Device.Endpoint,
					"log_level", updated.Log.Level,
				)
			}); err != nil {
				slog.Error("config watcher stopped", "err", err)
			}
		}()
	}

	httpSrv := &http.Server{
		Addr:              cfg.Exporter.ListenAddress,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("HTTP server listening", "addr", cfg.Exporter.ListenAddress)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("hilink-exporter shutting down")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	httpSrv.Shutdown(shutdownCtx) //nolint:errcheck
}

func newLogHandler(w io.Writer, format string, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
