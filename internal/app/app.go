// Package app wires configuration, storage and services into the HTTP API and CLI commands.
package app

import (
	"context"
	"net/http"
	"time"

	"bizintel/internal/analytics"
	"bizintel/internal/config"
	"bizintel/internal/database"
	"bizintel/internal/handler"
	"bizintel/internal/ml"
	"bizintel/internal/model"
	"bizintel/internal/report"
	"bizintel/internal/repository"
	"bizintel/internal/router"
	"bizintel/internal/seed"
	"bizintel/internal/service"
	"bizintel/internal/transfer"

	"github.com/rs/zerolog"
)

// App holds the components built on top of one database connection.
type App struct {
	DB         *database.DB
	Repos      *repository.Repositories
	Calculator analytics.Calculator
	Inventory  service.InventoryService
	Dashboard  service.DashboardService
	Reports    report.Generator
	Importer   *transfer.Importer
	Exporter   *transfer.Exporter
	Predictor  *ml.Predictor
	Seeder     *seed.Seeder

	cfg    *config.Config
	logger zerolog.Logger
}

// New builds every service over db. A failing S3 client leaves reports on the local disk.
func New(ctx context.Context, cfg *config.Config, db *database.DB, logger zerolog.Logger) *App {
	repos := repository.New(db.DB, logger)
	calc := analytics.NewCalculator(db, logger)

	inventory := service.NewInventoryService(repos.Inventory, model.StockThresholds{
		Low:    cfg.Inventory.LowStockThreshold,
		Medium: cfg.Inventory.MediumStockThreshold,
	}, logger)

	dashboard := service.NewDashboardService(calc, inventory, service.DashboardConfig{
		TTL:          time.Duration(cfg.Performance.CacheTTL) * time.Second,
		QueryTimeout: time.Duration(cfg.Performance.QueryTimeout) * time.Second,
	}, logger)

	return &App{
		DB:         db,
		Repos:      repos,
		Calculator: calc,
		Inventory:  inventory,
		Dashboard:  dashboard,
		Reports:    newReportGenerator(ctx, cfg, calc, inventory, logger),
		Importer:   transfer.NewImporter(repos, logger),
		Exporter:   transfer.NewExporter(repos, logger),
		Predictor:  ml.NewPredictor(db, cfg.ML, logger),
		Seeder:     seed.NewSeeder(repos, logger),
		cfg:        cfg,
		logger:     logger,
	}
}

func newReportGenerator(
	ctx context.Context,
	cfg *config.Config,
	calc analytics.Calculator,
	inventory report.InventorySource,
	logger zerolog.Logger,
) report.Generator {
	localSink := report.NewLocalSink(cfg.Reports.OutputDir, logger)

	var s3Sink report.Sink
	if cfg.S3.Enabled {
		sink, err := report.NewS3Sink(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 sink, falling back to local file system only")
		} else {
			s3Sink = sink
		}
	} else {
		logger.Info().Str("dir", cfg.Reports.OutputDir).Msg("using local file system for reports (S3 disabled)")
	}

	builder := report.NewBuilder(calc, inventory, report.Branding{
		Company: cfg.Reports.CompanyName,
		Footer:  cfg.Reports.Footer,
	}, logger)

	return report.NewGenerator(builder, report.NewFallbackSink(s3Sink, localSink, cfg.S3.Enabled, logger), logger)
}

// Handler returns the HTTP API with its middleware chain.
func (a *App) Handler() http.Handler {
	repos := a.Repos

	handlers := router.Handlers{
		Health:      handler.NewHealthHandler(a.DB, a.logger),
		Products:    handler.NewProductHandler(service.NewProductService(repos.Products, a.logger), a.logger),
		Customers:   handler.NewCustomerHandler(service.NewCustomerService(repos.Customers, a.logger), a.logger),
		Employees:   handler.NewEmployeeHandler(service.NewEmployeeService(repos.Employees, a.logger), a.logger),
		Sales:       handler.NewSaleHandler(service.NewSaleService(repos.Sales, repos.Products, repos.Customers, a.logger), a.logger),
		Inventory:   handler.NewInventoryHandler(a.Inventory, a.logger),
		Dashboard:   handler.NewDashboardHandler(a.Dashboard, a.logger),
		Analytics:   handler.NewAnalyticsHandler(a.Calculator, a.logger),
		Reports:     handler.NewReportHandler(a.Reports, a.logger),
		Transfer:    handler.NewTransferHandler(a.Importer, a.Exporter, a.logger),
		Maintenance: handler.NewMaintenanceHandler(service.NewMaintenanceService(repos.Maintenance, a.logger), a.logger),
		ML:          handler.NewMLHandler(a.Predictor, a.logger),
	}

	return router.New(handlers, router.Options{
		AuthEnabled: a.cfg.Auth.Enabled,
		APIKey:      a.cfg.Auth.APIKey,
	}, a.logger)
}
