package service

import (
	"context"
	"fmt"

	"bizintel/internal/model"
	"bizintel/internal/repository"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

type maintenanceService struct {
	repo   repository.MaintenanceRepository
	logger zerolog.Logger
}

// NewMaintenanceService creates a new maintenance service.
func NewMaintenanceService(repo repository.MaintenanceRepository, logger zerolog.Logger) MaintenanceService {
	return &maintenanceService{
		repo:   repo,
		logger: logger.With().Str("service", "maintenance").Logger(),
	}
}

func (s *maintenanceService) Stats(ctx context.Context) (*model.Stats, error) {
	stats, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get database statistics: %w", err)
	}
	return stats, nil
}

// Validate runs every data quality check. A failing query aborts the run;
// problems found in the data are reported as issues.
func (s *maintenanceService) Validate(ctx context.Context) (*model.ValidationReport, error) {
	checks := []struct {
		count func(context.Context) (int64, error)
		issue string
	}{
		{s.repo.NegativeStockCount, "%d products have negative stock"},
		{s.repo.CustomersWithoutEmail, "%d customers have no email address"},
		{s.repo.OrphanSales, "%d sales reference missing customers or products"},
	}

	var issues *multierror.Error
	for _, check := range checks {
		n, err := check.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to validate data: %w", err)
		}
		if n > 0 {
			issues = multierror.Append(issues, fmt.Errorf(check.issue, n))
		}
	}

	report := &model.ValidationReport{Valid: true, Issues: []string{}}
	if err := issues.ErrorOrNil(); err != nil {
		report.Valid = false
		for _, e := range issues.Errors {
			report.Issues = append(report.Issues, e.Error())
		}
		s.logger.Warn().Err(err).Int("issues", len(report.Issues)).Msg("data validation found issues")
	}

	return report, nil
}

func (s *maintenanceService) Clear(ctx context.Context) error {
	if err := s.repo.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}

	s.logger.Warn().Msg("all business data cleared")
	return nil
}
