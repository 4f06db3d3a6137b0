package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"bizintel/internal/app"
	"bizintel/internal/config"
	"bizintel/internal/database"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const configFlag = "config"

// loadConfig reads the configuration named by --config and builds the logger.
func loadConfig(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	path, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger).With().Str("command", cmd.Name()).Logger()
	return cfg, logger, nil
}

// openApp migrates the database, connects to it and wires every service.
// The returned function closes the connection.
func openApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app.App, func(), error) {
	if err := database.Migrate(cfg.Database, logger); err != nil {
		return nil, nil, err
	}

	db, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close database")
		}
	}
	return app.New(ctx, cfg, db, logger), closeDB, nil
}

// printJSON writes v to w as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
