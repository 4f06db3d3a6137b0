package service

import (
	"context"
	"fmt"

	"bizintel/internal/model"
	"bizintel/internal/repository"

	"github.com/rs/zerolog"
)

type employeeService struct {
	employeeRepo repository.EmployeeRepository
	logger       zerolog.Logger
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(employeeRepo repository.EmployeeRepository, logger zerolog.Logger) EmployeeService {
	return &employeeService{
		employeeRepo: employeeRepo,
		logger:       logger.With().Str("service", "employee").Logger(),
	}
}

func (s *employeeService) List(ctx context.Context, filter model.EmployeeFilter) ([]model.Employee, error) {
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset)

	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	return employees, nil
}

func (s *employeeService) GetByID(ctx context.Context, id int64) (*model.Employee, error) {
	if id <= 0 {
		return nil, model.ErrEmployeeNotFound
	}

	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	if employee == nil {
		return nil, model.ErrEmployeeNotFound
	}
	return employee, nil
}

func (s *employeeService) Create(ctx context.Context, e *model.Employee) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.HireDate.IsZero() {
		e.HireDate = model.Today()
	}

	if err := s.employeeRepo.Create(ctx, e); err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	s.logger.Info().Int64("employee_id", e.ID).Str("department", e.Department).Msg("employee created")
	return nil
}

func (s *employeeService) Update(ctx context.Context, e *model.Employee) error {
	if err := e.Validate(); err != nil {
		return err
	}

	if err := s.employeeRepo.Update(ctx, e); err != nil {
		if _, ok := model.AsDomainError(err); ok {
			return err
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return nil
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		if _, ok := model.AsDomainError(err); ok {
			return err
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	s.logger.Info().Int64("employee_id", id).Msg("employee deleted")
	return nil
}
