package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"txevents/internal/props"
)

// Config holds runtime parameters for the event and properties subsystem.
// Zero values mean "unspecified"; ApplyDefaults fills them in.
type Config struct {
	Addr      string `json:"addr" yaml:"addr" toml:"addr"`
	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogPretty bool   `json:"log_pretty" yaml:"log_pretty" toml:"log_pretty"`
	// Listeners names the providers to instantiate. Unset (nil) means all
	// linked providers; an empty list or ["none"] means no listener at all.
	Listeners []string `json:"listeners" yaml:"listeners" toml:"listeners"`
	// DefaultsName is the properties resource loaded first.
	DefaultsName string `json:"defaults_name" yaml:"defaults_name" toml:"defaults_name"`
	// SearchPaths are the ambient directories searched after the bundled resources.
	SearchPaths []string `json:"search_paths" yaml:"search_paths" toml:"search_paths"`
	// Overrides are optional properties resources overlaid on the defaults, in order.
	Overrides []string `json:"overrides" yaml:"overrides" toml:"overrides"`
	CORS      CORS     `json:"cors" yaml:"cors" toml:"cors"`
}

// CORS configures the optional CORS middleware of the admin HTTP surface.
type CORS struct {
	Enabled        bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" toml:"allowed_origins"`
}

const (
	defaultAddr     = ":8089"
	defaultLogLevel = "info"
)

// NoListeners disables discovery when given as the only Listeners entry.
const NoListeners = "none"

// Default returns a Config with every default applied.
func Default() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = defaultAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.DefaultsName == "" {
		c.DefaultsName = props.DefaultPropertiesName
	}
	if c.Overrides == nil {
		c.Overrides = []string{props.OverridePropertiesName}
	}
	if len(c.Listeners) == 1 && strings.EqualFold(strings.TrimSpace(c.Listeners[0]), NoListeners) {
		c.Listeners = []string{}
	}
}

// DiscoverAll reports whether every linked provider should be discovered.
func (c Config) DiscoverAll() bool { return c.Listeners == nil }

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
