package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}

	if cfg.AppName != "taskify-api" {
		t.Fatalf("AppName=%q, want taskify-api", cfg.AppName)
	}
	if cfg.Storage.Driver != DriverPostgres {
		t.Fatalf("Storage.Driver=%q, want %q", cfg.Storage.Driver, DriverPostgres)
	}
	if cfg.Cache.Enabled {
		t.Fatalf("Cache.Enabled=true, want false by default")
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Fatalf("Cache.TTL=%v, want 5m", cfg.Cache.TTL)
	}
	if cfg.Monitor.Interval != 10*time.Second {
		t.Fatalf("Monitor.Interval=%v, want 10s", cfg.Monitor.Interval)
	}
	if cfg.Database.URL == "" {
		t.Fatalf("Database.URL is empty, want one assembled from parts")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_NAME", "taskify-test")
	t.Setenv("STORAGE_DRIVER", DriverBolt)
	t.Setenv("BOLT_PATH", "/tmp/test-tasks.db")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}

	if cfg.AppName != "taskify-test" {
		t.Fatalf("AppName=%q, want taskify-test", cfg.AppName)
	}
	if cfg.Storage.Driver != DriverBolt {
		t.Fatalf("Storage.Driver=%q, want %q", cfg.Storage.Driver, DriverBolt)
	}
	if cfg.Storage.BoltPath != "/tmp/test-tasks.db" {
		t.Fatalf("Storage.BoltPath=%q", cfg.Storage.BoltPath)
	}
	if !cfg.Cache.Enabled {
		t.Fatalf("Cache.Enabled=false, want true")
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Fatalf("Cache.TTL=%v, want 90s", cfg.Cache.TTL)
	}
	if got := cfg.Address(); got != "0.0.0.0:9090" {
		t.Fatalf("Address()=%q, want 0.0.0.0:9090", got)
	}
}

func TestLoad_DatabaseURLWinsOverParts(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db.internal:5432/taskify?sslmode=require")
	t.Setenv("DB_HOST", "ignored")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if cfg.Database.URL != "postgres://u:p@db.internal:5432/taskify?sslmode=require" {
		t.Fatalf("Database.URL=%q, want the explicit URL untouched", cfg.Database.URL)
	}
}

func TestGetDuration_BareSecondsForm(t *testing.T) {
	t.Setenv("MONITOR_INTERVAL_SECONDS", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if cfg.Monitor.Interval != 30*time.Second {
		t.Fatalf("Monitor.Interval=%v, want 30s from bare integer", cfg.Monitor.Interval)
	}
}
