// Package config loads the aggregator's run configuration: a small YAML file
// with environment-variable overrides. Every field has a default, so running
// with no file at all works.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the run needs besides credentials, which stay in
// environment variables only.
type Config struct {
	DataDir         string   `yaml:"data_dir"`
	OutputDir       string   `yaml:"output_dir"`
	PageURL         string   `yaml:"page_url"`
	UserAgent       string   `yaml:"user_agent"`
	RequestDelayMS  int      `yaml:"request_delay_ms"`
	DigestCap       int      `yaml:"digest_cap"`
	DisabledSources []string `yaml:"disabled_sources"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DataDir:        "~/.london-culture",
		OutputDir:      "./public",
		UserAgent:      "LondonCulture/1.0 (personal event aggregator)",
		RequestDelayMS: 1000,
		DigestCap:      40,
	}
}

// Load reads the configuration file at path, falling back to defaults when
// path is empty or the file does not exist, then applies environment
// overrides (DATA_DIR, OUTPUT_DIR, PAGE_URL).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults only.
		case err != nil:
			return Config{}, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("PAGE_URL"); v != "" {
		cfg.PageURL = v
	}

	if cfg.RequestDelayMS < 0 {
		return Config{}, fmt.Errorf("request_delay_ms must not be negative")
	}
	return cfg, nil
}

// RequestDelay returns the politeness delay between fetches.
func (c Config) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelayMS) * time.Millisecond
}

// SourceDisabled reports whether name is on the disabled list.
func (c Config) SourceDisabled(name string) bool {
	for _, s := range c.DisabledSources {
		if s == name {
			return true
		}
	}
	return false
}
