package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bizintel/internal/database"
	"bizintel/internal/model"
	"bizintel/internal/report"
	"bizintel/internal/seed"
	"bizintel/internal/transfer"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if down {
				return database.Rollback(cfg.Database, logger)
			}
			return database.Migrate(cfg.Database, logger)
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "revert every applied migration")
	return cmd
}

func newSeedCmd() *cobra.Command {
	opts := seed.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace all data with generated demo data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}

			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			a, closeDB, err := openApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeDB()

			summary, err := a.Seeder.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), summary)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.Products, "products", opts.Products, "number of products")
	f.IntVar(&opts.Customers, "customers", opts.Customers, "number of customers")
	f.IntVar(&opts.Sales, "sales", opts.Sales, "number of sales")
	f.IntVar(&opts.Employees, "employees", opts.Employees, "number of employees")
	f.IntVar(&opts.Days, "days", opts.Days, "days of sales history ending today")
	f.Uint64Var(&opts.Seed, "seed", opts.Seed, "random seed")
	return cmd
}

func newTrainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Train the sales amount model and print its metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			a, closeDB, err := openApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeDB()

			m, err := a.Predictor.Train(cmd.Context())
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), struct {
				Path      string    `json:"path"`
				Features  int       `json:"features"`
				TrainRows int       `json:"trainRows"`
				TestRows  int       `json:"testRows"`
				MAE       float64   `json:"mae"`
				RMSE      float64   `json:"rmse"`
				R2        float64   `json:"r2"`
				TrainedAt time.Time `json:"trainedAt"`
			}{
				Path:      a.Predictor.ModelPath(),
				Features:  len(m.Features),
				TrainRows: m.TrainRows,
				TestRows:  m.TestRows,
				MAE:       m.Metrics.MAE,
				RMSE:      m.Metrics.RMSE,
				R2:        m.Metrics.R2,
				TrainedAt: m.TrainedAt,
			})
		},
	}
}

func newReportCmd() *cobra.Command {
	var (
		reportType string
		format     string
		start, end string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a report file",
		Long: `Generate a report of type sales_summary, product_analysis, customer_analysis,
financial_report or inventory as pdf, excel or csv. Without --out the file is
stored in the configured report location (S3 or the local reports directory).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := report.Request{Type: report.Type(reportType), Format: report.Format(format)}
			var err error
			if req.StartDate, err = optionalDate(start); err != nil {
				return err
			}
			if req.EndDate, err = optionalDate(end); err != nil {
				return err
			}

			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			a, closeDB, err := openApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeDB()

			if out == "" {
				result, err := a.Reports.Generate(cmd.Context(), req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			}

			rendered, err := a.Reports.Render(cmd.Context(), req)
			if err != nil {
				return err
			}
			if info, err := os.Stat(out); err == nil && info.IsDir() {
				out = filepath.Join(out, rendered.Name)
			}
			if err := os.WriteFile(out, rendered.Body, 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&reportType, "type", "t", string(report.TypeSalesSummary), "report type")
	f.StringVarP(&format, "format", "f", string(report.FormatPDF), "output format: pdf, excel or csv")
	f.StringVar(&start, "start", "", "first date included (YYYY-MM-DD)")
	f.StringVar(&end, "end", "", "last date included (YYYY-MM-DD)")
	f.StringVarP(&out, "out", "o", "", "write the file to this path or directory instead of the report store")
	return cmd
}

func optionalDate(s string) (model.Date, error) {
	if s == "" {
		return model.Date{}, nil
	}
	return model.ParseDate(s)
}

func newImportCmd() *cobra.Command {
	var (
		format  string
		preview int
	)

	cmd := &cobra.Command{
		Use:   "import ENTITY FILE",
		Short: "Import products, customers, sales or employees from a CSV, Excel or JSON file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, err := transfer.ParseEntity(args[0])
			if err != nil {
				return err
			}

			var ft transfer.Format
			if format != "" {
				ft, err = transfer.ParseFormat(format)
			} else {
				ft, err = transfer.FormatFromFilename(args[1])
			}
			if err != nil {
				return err
			}

			file, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("failed to open import file: %w", err)
			}
			defer file.Close()

			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			a, closeDB, err := openApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeDB()

			if preview > 0 {
				p, err := a.Importer.Preview(file, entity, ft, preview)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), p)
			}

			result, err := a.Importer.Import(cmd.Context(), file, entity, ft)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "file format: csv, excel or json (default from the file extension)")
	cmd.Flags().IntVar(&preview, "preview", 0, "show the first N rows without importing")
	return cmd
}

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every table to one Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if out == "" {
				out = fmt.Sprintf("business_data_%s.xlsx", time.Now().Format("20060102_150405"))
			}

			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			a, closeDB, err := openApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeDB()

			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			defer func() {
				if closeErr := file.Close(); closeErr != nil && err == nil {
					err = fmt.Errorf("failed to close export file: %w", closeErr)
				}
			}()

			summary, err := a.Exporter.Export(cmd.Context(), file)
			if err != nil {
				return err
			}

			logger.Info().Str("file", out).Msg("export written")
			return printJSON(cmd.OutOrStdout(), summary)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default business_data_<timestamp>.xlsx)")
	return cmd
}
