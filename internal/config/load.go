package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the service reads,
// e.g. LINGO_DATABASE_URL for database.url.
const EnvPrefix = "LINGO"

// Load reads configuration from an optional config.yaml in the working
// directory and from LINGO_* environment variables, which take precedence.
func Load() (*Config, error) {
	return load(func(v *viper.Viper) error {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
		return nil
	})
}

// LoadFile is Load with an explicit config file path.
func LoadFile(path string) (*Config, error) {
	return load(func(v *viper.Viper) error {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file %s: %w", path, err)
		}
		return nil
	})
}

func load(readFile func(v *viper.Viper) error) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if err := readFile(v); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults are unknown to viper until bound, so
	// AutomaticEnv alone would not surface them during Unmarshal.
	for _, key := range []string{
		"database.url",
		"auth.jwt_secret",
		"redis.addr",
		"redis.password",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.lock_ttl_seconds", 10)
	v.SetDefault("drill.max_strength", 1<<30)
	v.SetDefault("drill.guess_retries", 3)
	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.interval_minutes", 60)
	v.SetDefault("audit.concurrency", 4)
}
