// Package config loads the audit tool's configuration from defaults, an
// optional config file and LLM_SEO_* environment variables. CLI flags are
// merged on top by the app layer.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable of an audit run.
type Config struct {
	LogLevel  string        `mapstructure:"log_level"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Delay     time.Duration `mapstructure:"delay"`
	Workers   int           `mapstructure:"workers"`
	Retries   int           `mapstructure:"retries"`
	MaxPages  int           `mapstructure:"max_pages"`
	Depth     int           `mapstructure:"depth"`
	AIKey     string        `mapstructure:"ai_key"`
	AIModel   string        `mapstructure:"ai_model"`
}

const envPrefix = "LLM_SEO"

// Load reads the configuration. A config file named config.yaml in the
// working directory is honored when present; a missing file is not an error.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("user_agent", "llm-seo-audit/1.0 (+https://example.com/bot)")
	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("delay", 500*time.Millisecond)
	v.SetDefault("workers", 4)
	v.SetDefault("retries", 2)
	v.SetDefault("max_pages", 50)
	v.SetDefault("depth", 1)
	v.SetDefault("ai_key", "")
	v.SetDefault("ai_model", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
