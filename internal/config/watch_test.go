package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("device:\n  timeout: 1s\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan *Config, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg *Config) {
			select {
			case changed <- cfg:
			default:
			}
		})
	}()

	// The watcher may not be registered yet when the first write lands,
	// so keep rewriting until a reload is observed.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case cfg := <-changed:
			if cfg.Device.Timeout != 7*time.Second {
				t.Errorf("reloaded timeout: got %v, want 7s", cfg.Device.Timeout)
			}
			cancel()
			if err := <-done; err != nil {
				t.Errorf("Watch() returned %v", err)
			}
			return
		case <-tick.C:
			if err := os.WriteFile(path, []byte("device:\n  timeout: 7s\n"), 0o600); err != nil {
				t.Fatalf("rewrite config: %v", err)
			}
		case <-deadline:
			t.Fatal("onChange not called within 5s")
		}
	}
}

func TestWatch_InvalidReloadKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	called := false
	go func() {
		for i := 0; i < 4; i++ {
			time.Sleep(150 * time.Millisecond)
			_ = os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o600)
		}
	}()

	if err := Watch(ctx, path, func(*Config) { called = true }); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if called {
		t.Error("onChange called for an invalid config")
	}
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"), func(*Config) {})
	if err == nil {
		t.Fatal("expected error watching a missing file, got nil")
	}
}
