// Package config loads and validates pipeline configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Input   InputConfig   `mapstructure:"input"`
	Output  OutputConfig  `mapstructure:"output"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// InputConfig locates the project list document.
type InputConfig struct {
	Path string `mapstructure:"path"`
}

// OutputConfig locates the enriched output document.
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

// FetchConfig governs the HTTP client used for page fetches.
type FetchConfig struct {
	UserAgent    string        `mapstructure:"user_agent"`
	Accept       string        `mapstructure:"accept"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from defaults, an optional config file, and
// PROJECTMETA_-prefixed environment variables.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PROJECTMETA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input.path", "data/projects.yaml")
	v.SetDefault("output.path", "data/projects_enriched.json")
	v.SetDefault("fetch.user_agent", "Mozilla/5.0 (compatible; ProjectMetaFetcher/1.0)")
	v.SetDefault("fetch.accept", "text/html,application/xhtml+xml")
	v.SetDefault("fetch.timeout", "15s")
	v.SetDefault("fetch.max_body_bytes", 5*1024*1024)
	v.SetDefault("logging.development", false)
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("input.path must be set")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path must be set")
	}
	if c.Fetch.UserAgent == "" {
		return fmt.Errorf("fetch.user_agent must be set")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be > 0")
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		return fmt.Errorf("fetch.max_body_bytes must be > 0")
	}
	return nil
}
