// Package config loads the waypoint configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the file.
const (
	EnvScheme    = "WAYPOINT_SCHEME"
	EnvDomain    = "WAYPOINT_DOMAIN"
	EnvRedisAddr = "WAYPOINT_REDIS_ADDR"
	EnvLogLevel  = "WAYPOINT_LOG_LEVEL"
)

// ErrInvalid is returned when the merged configuration cannot be used.
var ErrInvalid = errors.New("invalid config")

type Log struct {
	Level string `mapstructure:"level" json:"level"`
}

type HTTP struct {
	Addr string `mapstructure:"addr" json:"addr"`
}

type Metrics struct {
	Addr string `mapstructure:"addr" json:"addr"`
}

// Redis configures the shared pending slot. An empty Addr keeps the slot in memory.
type Redis struct {
	Addr     string        `mapstructure:"addr" json:"addr"`
	Password string        `mapstructure:"password" json:"-"`
	DB       int           `mapstructure:"db" json:"db"`
	Key      string        `mapstructure:"key" json:"key"`
	TTL      time.Duration `mapstructure:"ttl" json:"ttl"`
}

type Animation struct {
	Duration time.Duration `mapstructure:"duration" json:"duration"`
}

// Config is the merged configuration of the CLI and server.
type Config struct {
	Scheme    string    `mapstructure:"scheme" json:"scheme"`
	Domain    string    `mapstructure:"domain" json:"domain"`
	Marker    string    `mapstructure:"marker" json:"marker"`
	Log       Log       `mapstructure:"log" json:"log"`
	HTTP      HTTP      `mapstructure:"http" json:"http"`
	Metrics   Metrics   `mapstructure:"metrics" json:"metrics"`
	Redis     Redis     `mapstructure:"redis" json:"redis"`
	Animation Animation `mapstructure:"animation" json:"animation"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Scheme:    "waypoint",
		Domain:    "waypoint.local",
		Marker:    "mobileLink",
		Log:       Log{Level: "info"},
		HTTP:      HTTP{Addr: ":8080"},
		Metrics:   Metrics{Addr: ":2112"},
		Redis:     Redis{Key: "waypoint:pending", TTL: 10 * time.Minute},
		Animation: Animation{Duration: 300 * time.Millisecond},
	}
}

// Load reads path (YAML, or JSON by extension) over the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := Decode(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}

	applyEnv(&cfg, os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	raw := make(map[string]any)
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return raw, nil
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return raw, nil
}

// Decode merges a generic map (as produced by a YAML or JSON parser) into out.
// Durations may be written as strings ("300ms") or integer nanoseconds.
func Decode(raw map[string]any, out any) error {
	if raw == nil {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvScheme); v != "" {
		cfg.Scheme = v
	}
	if v := getenv(EnvDomain); v != "" {
		cfg.Domain = v
	}
	if v := getenv(EnvRedisAddr); v != "" {
		cfg.Redis.Addr = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
}

// Validate checks the fields every command needs.
func (c Config) Validate() error {
	switch {
	case c.Scheme == "":
		return fmt.Errorf("%w: scheme is required", ErrInvalid)
	case strings.Contains(c.Scheme, ":"):
		return fmt.Errorf("%w: scheme %q must not contain ':'", ErrInvalid, c.Scheme)
	case c.Domain == "":
		return fmt.Errorf("%w: domain is required", ErrInvalid)
	case c.Animation.Duration < 0:
		return fmt.Errorf("%w: animation.duration must not be negative", ErrInvalid)
	}
	return nil
}
