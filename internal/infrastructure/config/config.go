package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Remote    RemoteConfig
	Storage   StorageConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8988"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// RemoteConfig holds remote session service configuration, used by the
// client-side synchronization store.
type RemoteConfig struct {
	BaseURL        string `envconfig:"REMOTE_URL" default:"http://localhost:8988/api"`
	TimeoutSeconds int    `envconfig:"REMOTE_TIMEOUT" default:"30"`
}

// StorageConfig holds local persistence configuration.
type StorageConfig struct {
	DataDir string `envconfig:"DATA_DIR" default:"/tmp/studysync"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8988",
			Host: "0.0.0.0",
		},
		Remote: RemoteConfig{
			BaseURL:        "http://localhost:8988/api",
			TimeoutSeconds: 30,
		},
		Storage: StorageConfig{
			DataDir: "/tmp/studysync",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
