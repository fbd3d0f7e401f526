// Package config loads evalexpr server and CLI settings from defaults, an
// optional YAML or TOML file, and environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Color modes.
const (
	ColorAuto = "auto"
	ColorOn   = "on"
	ColorOff  = "off"
)

// Config holds all settings.
type Config struct {
	HTTP HTTP `yaml:"http" toml:"http"`
	GRPC GRPC `yaml:"grpc" toml:"grpc"`

	// Color is one of auto, on, off.
	Color string `yaml:"color" toml:"color"`
	// MaxInputBytes caps the expression size accepted by the servers.
	MaxInputBytes int `yaml:"max_input_bytes" toml:"max_input_bytes"`
}

// HTTP configures the REST server.
type HTTP struct {
	Host string `yaml:"host" toml:"host"`
	Port int    `yaml:"port" toml:"port"`
}

// GRPC configures the gRPC server. It binds to the HTTP host.
type GRPC struct {
	Port int `yaml:"port" toml:"port"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		HTTP:          HTTP{Host: "0.0.0.0", Port: 8787},
		GRPC:          GRPC{Port: 8788},
		Color:         ColorAuto,
		MaxInputBytes: 64 << 10,
	}
}

// Load returns the defaults overlaid with the file at path (if path is not
// empty) and then with the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config file %q: want .yaml, .yml or .toml", path)
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("HOST"); v != "" {
		cfg.HTTP.Host = v
	}
	for _, e := range []struct {
		key string
		dst *int
	}{
		{"PORT", &cfg.HTTP.Port},
		{"GRPC_PORT", &cfg.GRPC.Port},
		{"EVALEXPR_MAX_INPUT", &cfg.MaxInputBytes},
	} {
		v := getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", e.key, v, err)
		}
		*e.dst = n
	}
	if v := getenv("EVALEXPR_COLOR"); v != "" {
		cfg.Color = v
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorOn, ColorOff:
	default:
		return fmt.Errorf("invalid color mode %q: want auto, on or off", c.Color)
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port %d", c.HTTP.Port)
	}
	if c.GRPC.Port < 0 || c.GRPC.Port > 65535 {
		return fmt.Errorf("invalid grpc port %d", c.GRPC.Port)
	}
	if c.MaxInputBytes <= 0 {
		return fmt.Errorf("max_input_bytes must be positive, got %d", c.MaxInputBytes)
	}
	return nil
}

// HTTPAddr returns host:port of the REST server.
func (c Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}

// GRPCAddr returns host:port of the gRPC server.
func (c Config) GRPCAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.GRPC.Port)
}
