package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Codec.DefaultCurrency != "TRY" || cfg.Codec.DefaultCountryCode != "+90" {
		t.Fatalf("codec defaults = %+v", cfg.Codec)
	}
	if cfg.Cache.Size != 256 || cfg.Cache.TTL != 30*time.Second {
		t.Fatalf("cache defaults = %+v", cfg.Cache)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ATTRIO_CODEC_DEFAULT_CURRENCY", "USD")
	t.Setenv("ATTRIO_CACHE_SIZE", "0")
	t.Setenv("ATTRIO_DATABASE_HOST", "db.internal")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Codec.DefaultCurrency != "USD" {
		t.Fatalf("currency = %q", cfg.Codec.DefaultCurrency)
	}
	if cfg.Cache.Size != 0 {
		t.Fatalf("cache size = %d", cfg.Cache.Size)
	}
	if cfg.Database.Host != "db.internal" {
		t.Fatalf("db host = %q", cfg.Database.Host)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("server:\n  addr: \":9090\"\nlog:\n  level: debug\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("level = %q", cfg.Log.Level)
	}
}
