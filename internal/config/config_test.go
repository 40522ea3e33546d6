package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_URL", "DB_NAME", "JWT_SECRET", "TOKEN_TTL", "APP_ENV", "CORS_ORIGINS", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.ServerPort)
	assert.Equal(t, "sqlite:./booktracker.db", cfg.DatabaseURL)
	assert.Equal(t, "booktracker", cfg.DatabaseName)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.False(t, cfg.IsTest())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/books")
	t.Setenv("JWT_SECRET", "k")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://books.example.com")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.ServerPort)
	assert.Equal(t, "postgres://u:p@localhost:5432/books", cfg.DatabaseURL)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"http://localhost:3000", "https://books.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
}

func TestLoad_SecretRequiredOutsideTest(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("APP_ENV", "test")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsTest())
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"PORT":      "eighty",
		"TOKEN_TTL": "a week",
		"LOG_LEVEL": "loud",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("JWT_SECRET", "k")
			t.Setenv(key, value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
