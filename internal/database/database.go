package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bizintel/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// DB is a connection pool together with the SQL dialect of its driver.
type DB struct {
	*sqlx.DB
	Dialect Dialect
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*DB, error) {
	driver, dsn, err := driverAndDSN(cfg)
	if err != nil {
		return nil, err
	}

	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("driver", cfg.Driver).
		Str("path", cfg.Path).
		Str("host", cfg.Host).
		Str("database", cfg.Database).
		Int("max_connections", cfg.MaxConnections).
		Msg("opening database")

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// SQLite allows a single writer; one connection avoids SQLITE_BUSY between pool members.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxConnections)
		db.SetMaxIdleConns(cfg.MinConnections)
		db.SetConnMaxLifetime(time.Duration(cfg.MaxConnLifetime) * time.Second)
		db.SetConnMaxIdleTime(30 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("database connection established")

	return &DB{DB: db, Dialect: dialect}, nil
}

// driverAndDSN maps the configured driver onto a registered database/sql driver.
func driverAndDSN(cfg config.DatabaseConfig) (string, string, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if err := ensureDir(cfg.Path); err != nil {
			return "", "", err
		}
		return "sqlite3", cfg.SQLiteDSN(), nil
	case config.DriverPostgres:
		return "pgx", cfg.ConnectionString(), nil
	default:
		return "", "", fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}
	return nil
}
