package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTP    HTTPConfig    `mapstructure:"http"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AuthType represents the type of authentication to apply to outgoing requests
type AuthType string

const (
	AuthTypeNone   AuthType = "none"
	AuthTypeBasic  AuthType = "basic"
	AuthTypeBearer AuthType = "bearer"
	AuthTypeAPIKey AuthType = "api_key"
)

// HTTPConfig holds transport-level settings shared by every request
type HTTPConfig struct {
	Timeout time.Duration     `mapstructure:"timeout"`
	Headers map[string]string `mapstructure:"headers"`
}

// AuthConfig selects an auth scheme and its settings (username/password,
// token, key/header depending on the type)
type AuthConfig struct {
	Type     AuthType          `mapstructure:"type"`
	Settings map[string]string `mapstructure:"settings"`
}

type LoggingConfig struct {
	Level             string `mapstructure:"level"`
	Format            string `mapstructure:"format"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
	OutputPath        string `mapstructure:"output_path"`
	DisableConsole    bool   `mapstructure:"disable_console"`
}

// Load reads apicall.yaml from the working directory, merged with
// APICALL_* environment variables. A missing config file is fine; the
// defaults describe a plain unauthenticated client.
func Load() (*Config, error) {
	_ = godotenv.Load()

	// Own viper instance: a library must not disturb the host
	// application's global viper state.
	v := viper.New()

	v.SetEnvPrefix("APICALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("auth.type", string(AuthTypeNone))
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetConfigName("apicall")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	switch config.Auth.Type {
	case AuthTypeNone, AuthTypeBasic, AuthTypeBearer, AuthTypeAPIKey:
	default:
		return nil, fmt.Errorf("unsupported auth type: %s", config.Auth.Type)
	}

	return &config, nil
}
