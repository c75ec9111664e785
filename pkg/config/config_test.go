package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Concurrency != 8 {
		t.Errorf("Concurrency = %d, want 8", cfg.Concurrency)
	}
	if cfg.RequestTimeout.Std() != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout.Std())
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q, want memory", cfg.Cache.Backend)
	}
	if len(cfg.Paid["python"]) == 0 || len(cfg.Paid["node"]) == 0 {
		t.Error("paid package sets should have defaults for both ecosystems")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Concurrency != 8 {
		t.Errorf("Concurrency = %d, want default 8", cfg.Concurrency)
	}
}

func TestLoad_File(t *testing.T) {
	content := `
concurrency = 4
request_timeout = "2s"

[cache]
backend = "redis"
ttl = "1h"

[cache.redis]
addr = "redis.internal:6379"
db = 2

[registry]
pypi_url = "http://localhost:8080/pypi"

[paid]
python = ["corp-only"]
`
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want 4", cfg.Concurrency)
	}
	if cfg.RequestTimeout.Std() != 2*time.Second {
		t.Errorf("RequestTimeout = %v, want 2s", cfg.RequestTimeout.Std())
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.Redis.Addr != "redis.internal:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("cache settings not applied: %+v", cfg.Cache)
	}
	if cfg.Registry.PyPIURL != "http://localhost:8080/pypi" {
		t.Errorf("Registry.PyPIURL = %q", cfg.Registry.PyPIURL)
	}
	if len(cfg.Paid["python"]) != 1 || cfg.Paid["python"][0] != "corp-only" {
		t.Errorf("Paid[python] = %v, want [corp-only]", cfg.Paid["python"])
	}
	// Sections absent from the file keep defaults.
	if cfg.AuditTimeout.Std() != 30*time.Second {
		t.Errorf("AuditTimeout = %v, want default 30s", cfg.AuditTimeout.Std())
	}
}

func TestLoad_InvalidConcurrency(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("concurrency = -1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Concurrency != 8 {
		t.Errorf("Concurrency = %d, want default 8 for invalid value", cfg.Concurrency)
	}
}
