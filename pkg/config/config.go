// Package config loads the fixture tool configuration from defaults, an
// optional YAML file, CLI flags and UAFIX_ environment variables.
package config

import (
	"context"
	"time"
)

// Config is the root configuration.
type Config struct {
	Log      LogConfig      `koanf:"log"      validate:"required"`
	Sources  SourcesConfig  `koanf:"sources"  validate:"required"`
	Database DatabaseConfig `koanf:"database"`
	Output   OutputConfig   `koanf:"output"`
}

// LogConfig controls logger setup.
type LogConfig struct {
	Level  string `koanf:"level"  validate:"oneof=debug info warn error disabled"`
	JSON   bool   `koanf:"json"`
	Source bool   `koanf:"source"`
}

// SourcesConfig selects the fixture trees to read.
type SourcesConfig struct {
	// Root holds one directory per fixture suite, named after the source.
	Root string `koanf:"root" validate:"required"`
	// Enabled restricts the run to the named sources. Empty means all.
	Enabled []string `koanf:"enabled" validate:"dive,required,source_name"`
	// Paths overrides the directory of individual sources.
	Paths map[string]string `koanf:"paths"`
}

// DatabaseConfig configures the optional request table source. It stays
// disabled while neither conn_string nor host is set.
type DatabaseConfig struct {
	ConnString     SensitiveString `koanf:"conn_string"     sensitive:"true"`
	Host           string          `koanf:"host"`
	Port           string          `koanf:"port"            validate:"omitempty,numeric"`
	User           string          `koanf:"user"`
	Password       SensitiveString `koanf:"password"        sensitive:"true"`
	DBName         string          `koanf:"name"`
	SSLMode        string          `koanf:"ssl_mode"        validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxOpenConns   int             `koanf:"max_open_conns"  validate:"gte=0"`
	ConnectTimeout time.Duration   `koanf:"connect_timeout"`
}

// Enabled reports whether any connection setting was provided.
func (d DatabaseConfig) Enabled() bool {
	return d.ConnString != "" || d.Host != ""
}

// OutputConfig controls how streams are written.
type OutputConfig struct {
	Pretty bool `koanf:"pretty"`
	// Verbosity is the progress threshold: 0 normal, 1 verbose, 2 very verbose.
	Verbosity int `koanf:"verbosity" validate:"gte=0,lte=2"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Sources: SourcesConfig{
			Root:    "fixtures",
			Enabled: []string{},
			Paths:   map[string]string{},
		},
		Database: DatabaseConfig{
			Port:           "5432",
			SSLMode:        "disable",
			MaxOpenConns:   4,
			ConnectTimeout: 5 * time.Second,
		},
	}
}

// SensitiveString hides its value when printed.
type SensitiveString string

func (s SensitiveString) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

// Value returns the plain value.
func (s SensitiveString) Value() string {
	return string(s)
}

// Service defines the configuration loading interface.
type Service interface {
	// Load loads configuration from the specified sources with precedence order.
	Load(ctx context.Context, sources ...Source) (*Config, error)
	// Validate checks if the configuration meets all validation requirements.
	Validate(config *Config) error
	// GetSource returns the source type that provided a configuration key.
	GetSource(key string) SourceType
}

// Source defines the interface for configuration sources.
type Source interface {
	// Load reads configuration from the source.
	Load() (map[string]any, error)
	// Type returns the source type identifier.
	Type() SourceType
}

// SourceType identifies the type of configuration source.
type SourceType string

const (
	SourceCLI     SourceType = "cli"
	SourceYAML    SourceType = "yaml"
	SourceEnv     SourceType = "env"
	SourceDefault SourceType = "default"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "UAFIX_"
