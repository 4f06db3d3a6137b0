package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"bizintel/internal/config"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate applies all pending schema migrations for the configured driver.
func Migrate(cfg config.DatabaseConfig, logger zerolog.Logger) error {
	return runMigrations(cfg, logger, func(m *migrate.Migrate) error { return m.Up() })
}

// Rollback reverts every applied migration.
func Rollback(cfg config.DatabaseConfig, logger zerolog.Logger) error {
	return runMigrations(cfg, logger, func(m *migrate.Migrate) error { return m.Down() })
}

// runMigrations uses its own connection because closing a migrate instance closes its database.
func runMigrations(cfg config.DatabaseConfig, logger zerolog.Logger, step func(*migrate.Migrate) error) error {
	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Warn().AnErr("source_error", srcErr).AnErr("database_error", dbErr).Msg("failed to close migrator")
		}
	}()

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	logger.Info().
		Str("driver", cfg.Driver).
		Uint("version", version).
		Bool("dirty", dirty).
		Msg("database migrations applied")

	return nil
}

func newMigrator(cfg config.DatabaseConfig) (*migrate.Migrate, error) {
	driver, dsn, err := driverAndDSN(cfg)
	if err != nil {
		return nil, err
	}

	src, err := iofs.New(migrationsFS, "migrations/"+cfg.Driver)
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database for migrations: %w", err)
	}

	var dbDriver migratedb.Driver
	switch cfg.Driver {
	case config.DriverSQLite:
		dbDriver, err = sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	case config.DriverPostgres:
		dbDriver, err = pgxmigrate.WithInstance(sqlDB, &pgxmigrate.Config{})
	}
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, cfg.Driver, dbDriver)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return m, nil
}
