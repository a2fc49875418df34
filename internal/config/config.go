// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	Env             string
	LogLevel        string
	AllowedOrigins  []string
	MaxBodyBytes    int64
	RateLimitRPS    float64
	RateLimitBurst  int
	EnableHSTS      bool
	ShutdownTimeout time.Duration
}

// Production reports whether APP_ENV asks for production behaviour.
func (c Config) Production() bool {
	return c.Env == "production"
}

// LoadEnvFiles reads .env and .env.local without overriding variables that
// are already set by the runtime (e.g. Docker).
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	cfg := Config{
		Addr:           getEnv("APP_ADDR", ":3000"),
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	var err error
	if cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64); err != nil || cfg.MaxBodyBytes <= 0 {
		return Config{}, invalid("MAX_BODY_BYTES", err)
	}
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64); err != nil || cfg.RateLimitRPS <= 0 {
		return Config{}, invalid("RATE_LIMIT_RPS", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "40")); err != nil || cfg.RateLimitBurst <= 0 {
		return Config{}, invalid("RATE_LIMIT_BURST", err)
	}
	if cfg.EnableHSTS, err = strconv.ParseBool(getEnv("ENABLE_HSTS", "false")); err != nil {
		return Config{}, invalid("ENABLE_HSTS", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		return Config{}, invalid("SHUTDOWN_TIMEOUT", err)
	}
	return cfg, nil
}

func invalid(key string, err error) error {
	if err == nil {
		return fmt.Errorf("invalid %s: must be positive", key)
	}
	return fmt.Errorf("invalid %s: %w", key, err)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
