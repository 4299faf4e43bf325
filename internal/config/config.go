// Package config loads application configuration from an optional YAML file
// and TASKIT_-prefixed environment variables. Environment variables take
// precedence over file values.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Tasks    TasksConfig    `mapstructure:"tasks"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains PostgreSQL connection settings.
type DatabaseConfig struct {
	URL      string `mapstructure:"url" validate:"required"`
	MaxConns int32  `mapstructure:"max_conns" validate:"gt=0"`
	MinConns int32  `mapstructure:"min_conns" validate:"gte=0"`
}

// AuthConfig contains settings for verifying tokens issued by the
// external identity provider.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// TasksConfig contains task listing and due-date scanning settings.
type TasksConfig struct {
	PageSize    int `mapstructure:"page_size" validate:"required,gt=0"`
	DueSoonDays int `mapstructure:"due_soon_days" validate:"required,gt=0"`
}

// Load reads configuration from the given file path (optional, "" skips the
// file) and from the environment, then validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("tasks.page_size", 10)
	v.SetDefault("tasks.due_soon_days", 2)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("TASKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range []string{
		"server.port",
		"server.log_level",
		"database.url",
		"database.max_conns",
		"database.min_conns",
		"auth.jwt_secret",
		"tasks.page_size",
		"tasks.due_soon_days",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
