package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/isdelr/book-tracker-be/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, env string) *config.Config {
	t.Helper()
	return &config.Config{
		ServerPort:  0,
		DatabaseURL: "sqlite:" + filepath.Join(t.TempDir(), "books.db"),
		JWTSecret:   "testsecret",
		TokenTTL:    time.Hour,
		Env:         env,
		CORSOrigins: []string{"*"},
	}
}

func TestStart_TestModeDoesNotListen(t *testing.T) {
	ctx := context.Background()
	a := New(testConfig(t, config.EnvTest))
	require.NoError(t, a.Start(ctx))
	defer a.Stop(ctx)

	assert.Empty(t, a.Addr())
	require.NotNil(t, a.Handler())

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStart_ServesUntilStopped(t *testing.T) {
	ctx := context.Background()
	a := New(testConfig(t, config.EnvDevelopment))
	require.NoError(t, a.Start(ctx))

	addr := a.Addr()
	require.NotEmpty(t, addr)

	resp, err := http.Get("http://" + addr + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, a.Stop(stopCtx))

	_, err = http.Get("http://" + addr + "/health")
	assert.Error(t, err)
}

func TestStart_Twice(t *testing.T) {
	ctx := context.Background()
	a := New(testConfig(t, config.EnvTest))
	require.NoError(t, a.Start(ctx))
	defer a.Stop(ctx)

	assert.Error(t, a.Start(ctx))
}

func TestStart_BadDatabaseURL(t *testing.T) {
	cfg := testConfig(t, config.EnvTest)
	cfg.DatabaseURL = "redis://localhost"

	a := New(cfg)
	err := a.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open store")
	assert.NoError(t, a.Stop(context.Background()))
}
