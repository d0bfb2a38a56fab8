// Package config loads osctool settings from defaults, an optional YAML file,
// OSCTOOL_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cab/go-osc/internal/packetdoc"
	"github.com/cab/go-osc/osc"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the codec limits and output settings.
type Config struct {
	MaxDepth      int           `mapstructure:"max_depth" yaml:"max_depth"`
	MaxPacketSize int           `mapstructure:"max_packet_size" yaml:"max_packet_size"`
	Output        string        `mapstructure:"output" yaml:"output"`
	Logging       LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // DEBUG, INFO, WARN, ERROR
	Format string `mapstructure:"format" yaml:"format"` // text, json
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"max-depth":       "max_depth",
	"max-packet-size": "max_packet_size",
	"output":          "output",
	"log-level":       "logging.level",
	"log-format":      "logging.format",
}

// Load reads the configuration.
//
// Configuration precedence (highest to lowest):
//  1. Command-line flags that were set explicitly
//  2. Environment variables (OSCTOOL_*)
//  3. Configuration file, if configPath is not empty
//  4. Default values
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("OSCTOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("configuration file not found: %s", configPath)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("max_depth", osc.DefaultMaxDepth)
	v.SetDefault("max_packet_size", osc.DefaultMaxPacketSize)
	v.SetDefault("output", packetdoc.FormatText)
	v.SetDefault("logging.level", "INFO")
	v.SetDefault("logging.format", "text")
}

// Validate checks the configuration values.
func Validate(cfg *Config) error {
	if cfg.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", cfg.MaxDepth)
	}
	if cfg.MaxPacketSize < 1 {
		return fmt.Errorf("max_packet_size must be at least 1, got %d", cfg.MaxPacketSize)
	}
	switch cfg.Output {
	case packetdoc.FormatText, packetdoc.FormatJSON, packetdoc.FormatYAML, packetdoc.FormatCBOR:
	default:
		return fmt.Errorf("invalid output format %q", cfg.Output)
	}
	switch strings.ToUpper(cfg.Logging.Level) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("invalid log level %q", cfg.Logging.Level)
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", cfg.Logging.Format)
	}
	return nil
}

// Codec returns the codec configured with the loaded limits.
func (c *Config) Codec() osc.Codec {
	return osc.Codec{MaxDepth: c.MaxDepth, MaxPacketSize: c.MaxPacketSize}
}
