// Package config loads the YAML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-skyscope/internal/ephem"
	"github.com/litescript/ls-skyscope/internal/site"
)

// Config is the application configuration. Zero-valued fields in a file
// keep their defaults.
type Config struct {
	LogLevel    string       `yaml:"log_level"`
	LogFormat   string       `yaml:"log_format"` // text or json
	Ephemeris   string       `yaml:"ephemeris"`  // local, horizons or auto
	HorizonsURL string       `yaml:"horizons_url"`
	DefaultSite string       `yaml:"default_site"`
	Server      ServerConfig `yaml:"server"`
	Sites       []site.Site  `yaml:"sites"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Enabled     bool    `yaml:"enabled"` // serve instead of printing; -serve implies it
	Addr        string  `yaml:"addr"`
	RateLimit   float64 `yaml:"rate_limit"` // requests per second per client
	Burst       int     `yaml:"burst"`
	AllowOrigin string  `yaml:"allow_origin"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:    "info",
		LogFormat:   "text",
		Ephemeris:   ephem.ModeLocal.String(),
		HorizonsURL: ephem.HorizonsAPIURL,
		DefaultSite: "London",
		Server: ServerConfig{
			Addr:        ":8080",
			RateLimit:   5,
			Burst:       10,
			AllowOrigin: "*",
		},
	}
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, ok := ephem.LookupMode(c.Ephemeris); !ok {
		return fmt.Errorf("ephemeris: unknown mode %q (want local, horizons or auto)", c.Ephemeris)
	}
	if c.Server.Addr != "" {
		if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
			return fmt.Errorf("server.addr: %w", err)
		}
	} else if c.Server.Enabled {
		return errors.New("server.addr is required when server.enabled is set")
	}
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("server.rate_limit must be positive, got %v", c.Server.RateLimit)
	}
	if c.Server.Burst < 1 {
		return fmt.Errorf("server.burst must be at least 1, got %d", c.Server.Burst)
	}
	reg, err := c.SiteRegistry()
	if err != nil {
		return fmt.Errorf("sites: %w", err)
	}
	if c.DefaultSite != "" {
		if _, ok := reg.Lookup(c.DefaultSite); !ok {
			return fmt.Errorf("default_site: unknown site %q", c.DefaultSite)
		}
	}
	return nil
}

// SiteRegistry returns the presets merged with the configured sites.
func (c Config) SiteRegistry() (*site.Registry, error) {
	return site.NewRegistry(c.Sites...)
}

// Mode returns the configured ephemeris mode.
func (c Config) Mode() ephem.Mode {
	return ephem.ParseMode(c.Ephemeris)
}
