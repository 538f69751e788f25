package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demo-app-api/internal/config"
	"demo-app-api/internal/database"
	"demo-app-api/internal/repositories/sqlite"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newManager(t *testing.T) (*database.ConnectionManager, string) {
	dbPath := filepath.Join(t.TempDir(), "users.db")
	return database.NewConnectionManager(&database.ConnectionConfig{
		DatabasePath:    dbPath,
		ConnMaxLifetime: time.Hour,
		Logger:          testLogger(),
	}), dbPath
}

func TestRun(t *testing.T) {
	cm, _ := newManager(t)
	ctx := context.Background()

	require.NoError(t, run(ctx, cm, "up", "", testLogger()))
	require.NoError(t, run(ctx, cm, "validate", "", testLogger()))
	require.NoError(t, run(ctx, cm, "status", "", testLogger()))
	require.NoError(t, run(ctx, cm, "down", "", testLogger()))
	assert.Error(t, run(ctx, cm, "validate", "", testLogger()))
}

func TestRun_Import(t *testing.T) {
	cm, dbPath := newManager(t)
	ctx := context.Background()

	file := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(file, []byte(`[{"id":"u1","name":"Ada","email":"ada@example.com"}]`), 0644))

	assert.Error(t, run(ctx, cm, "import", "", testLogger()))
	require.NoError(t, run(ctx, cm, "import", file, testLogger()))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	user, err := sqlite.NewUserRepository(db, testLogger()).GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
}

func TestRun_UnknownAction(t *testing.T) {
	cm, _ := newManager(t)
	assert.Error(t, run(context.Background(), cm, "sideways", "", testLogger()))
}

func TestConnectionConfig(t *testing.T) {
	dir := t.TempDir()
	dc := &config.DatabaseConfig{
		Path:            filepath.Join(dir, "configured", "users.db"),
		ConnMaxLifetime: 2 * time.Hour,
	}

	cc, err := connectionConfig(dc, "", testLogger())
	require.NoError(t, err)
	assert.Equal(t, dc.Path, cc.DatabasePath)
	assert.Equal(t, 2*time.Hour, cc.ConnMaxLifetime)
	assert.DirExists(t, filepath.Join(dir, "configured"))

	override := filepath.Join(dir, "flag", "other.db")
	cc, err = connectionConfig(dc, override, testLogger())
	require.NoError(t, err)
	assert.Equal(t, override, cc.DatabasePath)
	assert.Equal(t, 2*time.Hour, cc.ConnMaxLifetime)
	assert.Equal(t, filepath.Join(dir, "configured", "users.db"), dc.Path)
}
