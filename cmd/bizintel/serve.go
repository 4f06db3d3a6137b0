package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger.Info().Msg("starting bizintel API server")

			ctx := cmd.Context()
			a, closeDB, err := openApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer closeDB()

			// Create HTTP server
			server := &http.Server{
				Addr:         cfg.Server.Address(),
				Handler:      a.Handler(),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 60 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			// Channel to listen for errors from the server
			serverErrors := make(chan error, 1)

			go func() {
				logger.Info().
					Str("address", cfg.Server.Address()).
					Str("driver", cfg.Database.Driver).
					Msg("HTTP server started")
				serverErrors <- server.ListenAndServe()
			}()

			// Block until we receive a signal or an error
			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server error: %w", err)

			case <-ctx.Done():
				logger.Info().Msg("shutdown signal received, starting graceful shutdown")

				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer shutdownCancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					logger.Error().Err(err).Msg("failed to shutdown server gracefully")
					if closeErr := server.Close(); closeErr != nil {
						logger.Error().Err(closeErr).Msg("failed to close server")
					}
					return fmt.Errorf("server shutdown failed: %w", err)
				}

				logger.Info().Msg("server shutdown completed")
			}

			return nil
		},
	}
}
