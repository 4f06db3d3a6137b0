package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bizintel",
		Short: "Business intelligence service for sales, customers and inventory",
		Long: `bizintel stores products, customers, sales and employees, and serves
KPI dashboards, analytics, reports, data import/export and sales forecasts
over an HTTP API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String(configFlag, "", "path to a YAML or JSON configuration file")

	rootCmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSeedCmd(),
		newTrainCmd(),
		newReportCmd(),
		newImportCmd(),
		newExportCmd(),
	)
	return rootCmd
}
