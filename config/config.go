package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultHost        = "https://darklang.com"
	DefaultDevHost     = "http://darklang.localhost:8000"
	DefaultAuthTimeout = 30 * time.Second
)

type Config struct {
	Host        string
	DevHost     string
	Username    string
	Password    string
	Canvas      string
	AuthTimeout time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using environment variables only")
	}

	config := &Config{
		Host:        getEnv("DARK_HOST", DefaultHost),
		DevHost:     getEnv("DARK_DEV_HOST", DefaultDevHost),
		Username:    getEnv("DARK_USER", ""),
		Password:    getEnv("DARK_PASSWORD", ""),
		Canvas:      getEnv("DARK_CANVAS", ""),
		AuthTimeout: DefaultAuthTimeout,
	}

	if raw := getEnv("DARK_AUTH_TIMEOUT", ""); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid DARK_AUTH_TIMEOUT %q: %w", raw, err)
		}
		config.AuthTimeout = timeout
	}

	return config, nil
}

// ResolveHost picks the base URL for a run: an explicit override wins, then
// the dev host when dev is set, then the production host.
func (c *Config) ResolveHost(override string, dev bool) string {
	if override != "" {
		return override
	}
	if dev {
		return c.DevHost
	}
	return c.Host
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
