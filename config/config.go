// Package config resolves the simulator settings: defaults, then SINISTER_*
// environment variables, then an optional YAML file, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable prefix
const envPrefix = "SINISTER_"

var (
	// ErrInvalid wraps every validation failure
	ErrInvalid = errors.New("config: invalid value")
)

// Config is the complete runtime configuration
type Config struct {
	TickInterval   time.Duration `yaml:"tick_interval"`
	Seed           int64         `yaml:"seed"`
	DataFile       string        `yaml:"data_file"`
	LogFile        string        `yaml:"log_file"`
	LogLevel       string        `yaml:"log_level"`
	LogFormat      string        `yaml:"log_format"`
	Sound          bool          `yaml:"sound"`
	Volume         int           `yaml:"volume"`
	Spectate       string        `yaml:"spectate"`
	LegacyDeadZone bool          `yaml:"legacy_dead_zone"`
	Debug          bool          `yaml:"debug"`
}

// Default returns the built-in configuration
// A zero Seed means "seed from the clock"
func Default() Config {
	return Config{
		TickInterval: 5 * time.Millisecond,
		DataFile:     "sinister-escape.yaml",
		LogFile:      "logs/sinister-escape.log",
		LogLevel:     "info",
		LogFormat:    "text",
		Sound:        true,
		Volume:       80,
	}
}

// Load builds the configuration from defaults, environment and the YAML file
// at path (skipped when path is empty)
func Load(path string) (Config, error) {
	cfg := Default()
	cfg.applyEnv(os.LookupEnv)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return cfg, nil
}

// applyEnv overrides fields from SINISTER_* variables; malformed values are ignored
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	get := func(name string) (string, bool) {
		v, ok := lookup(envPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	if v, ok := get("TICK_INTERVAL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.TickInterval = d
		}
	}
	if v, ok := get("SEED"); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = n
		}
	}
	if v, ok := get("DATA_FILE"); ok {
		c.DataFile = v
	}
	if v, ok := get("LOG_FILE"); ok {
		c.LogFile = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := get("LOG_FORMAT"); ok {
		c.LogFormat = strings.ToLower(v)
	}
	if v, ok := get("SOUND"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Sound = b
		}
	}
	if v, ok := get("VOLUME"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Volume = n
		}
	}
	if v, ok := get("SPECTATE"); ok {
		c.Spectate = v
	}
	if v, ok := get("LEGACY_DEAD_ZONE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.LegacyDeadZone = b
		}
	}
	if v, ok := get("DEBUG"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}

// Validate rejects settings the simulator cannot run with
func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick interval %v must be positive", ErrInvalid, c.TickInterval)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q (want text or json)", ErrInvalid, c.LogFormat)
	}
	if c.Volume < 0 || c.Volume > 100 {
		return fmt.Errorf("%w: volume %d outside 0-100", ErrInvalid, c.Volume)
	}
	if c.DataFile == "" {
		return fmt.Errorf("%w: empty data file", ErrInvalid)
	}
	return nil
}
