// Package config loads acm-events settings.
//
// Settings are resolved in this order, later wins: built-in defaults, the
// YAML config file, environment variables (optionally from a .env file),
// and finally command-line flags applied by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is looked up relative to the working directory.
	DefaultConfigPath = "acm-events.yaml"

	DefaultPort     = 8080
	DefaultLogLevel = "info"
	DefaultTimezone = "Asia/Kolkata"
	DefaultBaseURL  = "http://localhost:8080"
)

// Config holds the site configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Site    SiteConfig    `yaml:"site"`
	Counter CounterConfig `yaml:"counter"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// SiteConfig holds content settings.
type SiteConfig struct {
	// CatalogFile overrides the embedded catalog when set.
	CatalogFile string `yaml:"catalog_file"`
	BaseURL     string `yaml:"base_url"`
	Timezone    string `yaml:"timezone"`
}

// CounterConfig tunes the count-up animation.
type CounterConfig struct {
	Duration  time.Duration `yaml:"duration"`
	Steps     int           `yaml:"steps"`
	Threshold float64       `yaml:"visibility_threshold"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            DefaultPort,
			ShutdownTimeout: 5 * time.Second,
		},
		Site: SiteConfig{
			BaseURL:  DefaultBaseURL,
			Timezone: DefaultTimezone,
		},
		Counter: CounterConfig{
			Duration:  2000 * time.Millisecond,
			Steps:     60,
			Threshold: 0.1,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// Load reads .env (if present), then the YAML file at path, then applies
// environment overrides. A missing file at the default path is not an
// error; a missing file at an explicit path is.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	data, err := os.ReadFile(expandPath(path))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// defaults only
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("CATALOG_FILE"); v != "" {
		c.Site.CatalogFile = v
	}
	if v := os.Getenv("SITE_BASE_URL"); v != "" {
		c.Site.BaseURL = v
	}
	if v := os.Getenv("SITE_TIMEZONE"); v != "" {
		c.Site.Timezone = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// fillDefaults restores defaults for zero values a config file may have
// blanked out.
func (c *Config) fillDefaults() {
	d := Defaults()
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if c.Site.Timezone == "" {
		c.Site.Timezone = d.Site.Timezone
	}
	if c.Site.BaseURL == "" {
		c.Site.BaseURL = d.Site.BaseURL
	}
	c.Site.BaseURL = strings.TrimSuffix(c.Site.BaseURL, "/")
	if c.Counter.Duration <= 0 {
		c.Counter.Duration = d.Counter.Duration
	}
	if c.Counter.Steps <= 0 {
		c.Counter.Steps = d.Counter.Steps
	}
	if c.Counter.Threshold <= 0 || c.Counter.Threshold > 1 {
		c.Counter.Threshold = d.Counter.Threshold
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// Location resolves the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Site.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// expandPath expands a leading ~/ to the home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
