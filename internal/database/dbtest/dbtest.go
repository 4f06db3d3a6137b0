// Package dbtest opens migrated throwaway databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"bizintel/internal/config"
	"bizintel/internal/database"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// SQLiteConfig returns a configuration pointing at a fresh file under t.TempDir.
func SQLiteConfig(t testing.TB) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Driver:         config.DriverSQLite,
		Path:           filepath.Join(t.TempDir(), "test.db"),
		MaxConnections: 1,
	}
}

// NewSQLite returns a migrated SQLite database that is closed when the test ends.
func NewSQLite(t testing.TB) *database.DB {
	t.Helper()
	return Open(t, SQLiteConfig(t))
}

// Open migrates and opens the database described by cfg.
func Open(t testing.TB, cfg config.DatabaseConfig) *database.DB {
	t.Helper()

	logger := zerolog.Nop()
	require.NoError(t, database.Migrate(cfg, logger))

	db, err := database.Open(context.Background(), cfg, logger)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}
