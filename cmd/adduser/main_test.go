package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/isdelr/book-tracker-be/internal/database"
	"github.com/isdelr/book-tracker-be/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteURL(t *testing.T) string {
	t.Helper()
	return "sqlite:" + filepath.Join(t.TempDir(), "books.db")
}

func TestRun_Success(t *testing.T) {
	url := sqliteURL(t)
	stdout := new(bytes.Buffer)

	args := []string{"-username", "alice", "-email", "alice@x.com", "-password", "secret", "-db", url}
	require.NoError(t, run(args, new(bytes.Buffer), stdout, new(bytes.Buffer)))
	assert.Contains(t, stdout.String(), "User alice created successfully")

	// The account is usable for login afterwards.
	ctx := context.Background()
	store, err := database.Open(ctx, url, "")
	require.NoError(t, err)
	defer store.Close(ctx)

	user, err := services.NewUserService(store.Users()).AuthenticateUser(ctx, "alice@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestRun_DuplicateUser(t *testing.T) {
	args := []string{"-username", "alice", "-email", "alice@x.com", "-password", "secret", "-db", sqliteURL(t)}

	require.NoError(t, run(args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)))

	err := run(args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRun_MissingFlags(t *testing.T) {
	stdout := new(bytes.Buffer)

	err := run([]string{"-username", "alice"}, new(bytes.Buffer), stdout, new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required flags")
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestRun_InteractivePassword(t *testing.T) {
	stdout := new(bytes.Buffer)
	stdin := bytes.NewBufferString("typed_secret\n")

	args := []string{"-username", "bob", "-email", "bob@x.com", "-db", sqliteURL(t)}
	require.NoError(t, run(args, stdin, stdout, new(bytes.Buffer)))

	assert.Contains(t, stdout.String(), "Password: ")
	assert.Contains(t, stdout.String(), "User bob created successfully")
}

func TestRun_EmptyPassword(t *testing.T) {
	args := []string{"-username", "bob", "-email", "bob@x.com", "-db", sqliteURL(t)}
	err := run(args, bytes.NewBufferString("\n"), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password cannot be empty")
}

func TestRun_PasswordTooLong(t *testing.T) {
	args := []string{"-username", "bob", "-email", "bob@x.com", "-password", strings.Repeat("x", 73), "-db", sqliteURL(t)}
	err := run(args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 72 bytes")
}

func TestRun_DatabaseURLFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.db")
	t.Setenv("DATABASE_URL", "sqlite:"+path)

	args := []string{"-username", "carol", "-email", "carol@x.com", "-password", "secret"}
	require.NoError(t, run(args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)))
	assert.FileExists(t, path)
}

func TestRun_UnsupportedDatabase(t *testing.T) {
	args := []string{"-username", "dave", "-email", "dave@x.com", "-password", "secret", "-db", "redis://localhost"}
	err := run(args, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open database")
}

func TestRun_InvalidFlag(t *testing.T) {
	err := run([]string{"-invalid"}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flag provided but not defined")
}
