package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Environments recognised in APP_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	DatabaseURL  string
	DatabaseName string // MongoDB only
	JWTSecret    string
	TokenTTL     time.Duration
	Env          string
	CORSOrigins  []string
	LogLevel     zerolog.Level
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "5000"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "168h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL %q", os.Getenv("TOKEN_TTL"))
	}

	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		ServerPort:   port,
		DatabaseURL:  getEnv("DATABASE_URL", "sqlite:./booktracker.db"),
		DatabaseName: getEnv("DB_NAME", "booktracker"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		TokenTTL:     ttl,
		Env:          getEnv("APP_ENV", EnvDevelopment),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "*")),
		LogLevel:     level,
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsTest() {
			return nil, errors.New("JWT_SECRET must be set")
		}
		cfg.JWTSecret = "testsecret"
	}

	return cfg, nil
}

// IsTest reports whether the process runs in test mode, where no listener is bound.
func (c *Config) IsTest() bool { return c.Env == EnvTest }

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool { return c.Env == EnvProduction }

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
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
