// Package config loads stf-exporter settings from .stf-exporter.yaml, STF_*
// environment variables and command-line flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hellenic-development/stf-exporter/pkg/extractor"
)

// ServeConfig holds settings for the HTTP converter service.
type ServeConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	BodyLimit    int           `mapstructure:"body_limit"`
}

// WatchConfig holds settings for watch mode.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// Config holds all runtime configuration.
type Config struct {
	Model          string      `mapstructure:"model"`
	Output         string      `mapstructure:"output"`
	Operator       string      `mapstructure:"operator"`
	ProgramName    string      `mapstructure:"program_name"`
	ProgramVersion string      `mapstructure:"program_version"`
	WindowPosition string      `mapstructure:"window_position"`
	Verbose        bool        `mapstructure:"verbose"`
	Serve          ServeConfig `mapstructure:"serve"`
	Watch          WatchConfig `mapstructure:"watch"`
}

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "STF"

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("model", "")
	viper.SetDefault("output", "")
	viper.SetDefault("operator", "")
	viper.SetDefault("program_name", "")
	viper.SetDefault("program_version", "")
	viper.SetDefault("window_position", string(extractor.WindowPositionBasis))
	viper.SetDefault("verbose", false)
	viper.SetDefault("serve.port", 8095)
	viper.SetDefault("serve.read_timeout", 10*time.Second)
	viper.SetDefault("serve.write_timeout", 10*time.Second)
	viper.SetDefault("serve.body_limit", 16<<20)
	viper.SetDefault("watch.debounce", 200*time.Millisecond)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if _, err := extractor.ParseWindowPosition(cfg.WindowPosition); err != nil {
		return Config{}, err
	}
	if cfg.Serve.Port <= 0 || cfg.Serve.Port > 65535 {
		return Config{}, fmt.Errorf("serve.port must be between 1 and 65535, got %d", cfg.Serve.Port)
	}
	if cfg.Watch.Debounce < 0 {
		return Config{}, fmt.Errorf("watch.debounce must not be negative, got %s", cfg.Watch.Debounce)
	}

	return cfg, nil
}
