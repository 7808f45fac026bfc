package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"PORT", "CATALOG_FILE", "SITE_BASE_URL", "SITE_TIMEZONE", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Counter.Duration != 2*time.Second || cfg.Counter.Steps != 60 {
		t.Errorf("Counter = %+v", cfg.Counter)
	}
	if cfg.Counter.Threshold != 0.1 {
		t.Errorf("Threshold = %v, want 0.1", cfg.Counter.Threshold)
	}
	if cfg.Site.CatalogFile != "" {
		t.Errorf("CatalogFile = %q, want embedded", cfg.Site.CatalogFile)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "site.yaml")
	doc := `
server:
  port: 9090
site:
  base_url: https://acm.example.org/
  timezone: UTC
counter:
  duration: 1500ms
  steps: 30
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Site.BaseURL != "https://acm.example.org" {
		t.Errorf("BaseURL = %q, trailing slash should be trimmed", cfg.Site.BaseURL)
	}
	if cfg.Counter.Duration != 1500*time.Millisecond || cfg.Counter.Steps != 30 {
		t.Errorf("Counter = %+v", cfg.Counter)
	}
	if cfg.Counter.Threshold != 0.1 {
		t.Errorf("Threshold should keep its default, got %v", cfg.Counter.Threshold)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log level = %q", cfg.Log.Level)
	}
	if cfg.Location() != time.UTC {
		t.Errorf("Location() = %v, want UTC", cfg.Location())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("PORT", "7000")
	t.Setenv("CATALOG_FILE", "/srv/events.yaml")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Site.CatalogFile != "/srv/events.yaml" {
		t.Errorf("CatalogFile = %q", cfg.Site.CatalogFile)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log level = %q", cfg.Log.Level)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	t.Run("Explicit missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "nope.yaml")); err == nil {
			t.Error("Expected error for missing explicit config")
		}
	})

	t.Run("Invalid YAML", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("server: [1, 2"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("Expected parse error")
		}
	})

	t.Run("Invalid PORT", func(t *testing.T) {
		t.Setenv("PORT", "eighty")
		if _, err := Load(""); err == nil {
			t.Error("Expected error for invalid PORT")
		}
	})
}

func TestLocationFallback(t *testing.T) {
	cfg := Defaults()
	cfg.Site.Timezone = "Mars/Olympus_Mons"
	if cfg.Location() != time.UTC {
		t.Errorf("Unknown timezone should fall back to UTC")
	}
}
