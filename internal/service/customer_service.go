package service

import (
	"context"
	"fmt"

	"bizintel/internal/model"
	"bizintel/internal/repository"

	"github.com/rs/zerolog"
)

type customerService struct {
	customerRepo repository.CustomerRepository
	logger       zerolog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo repository.CustomerRepository, logger zerolog.Logger) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		logger:       logger.With().Str("service", "customer").Logger(),
	}
}

func (s *customerService) List(ctx context.Context, filter model.CustomerFilter) ([]model.Customer, error) {
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset)

	customers, err := s.customerRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("search", filter.Search).Msg("failed to list customers")
		return nil, fmt.Errorf("failed to get customers: %w", err)
	}
	return customers, nil
}

func (s *customerService) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	if id <= 0 {
		return nil, model.ErrCustomerNotFound
	}

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to get customer by ID")
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}
	return customer, nil
}

func (s *customerService) Create(ctx context.Context, c *model.Customer) error {
	applyCustomerDefaults(c)
	if err := c.Validate(); err != nil {
		return err
	}

	if err := s.customerRepo.Create(ctx, c); err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	s.logger.Info().Int64("customer_id", c.ID).Str("segment", c.Segment).Msg("customer created")
	return nil
}

func (s *customerService) Update(ctx context.Context, c *model.Customer) error {
	applyCustomerDefaults(c)
	if err := c.Validate(); err != nil {
		return err
	}

	if err := s.customerRepo.Update(ctx, c); err != nil {
		if _, ok := model.AsDomainError(err); ok {
			return err
		}
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

func (s *customerService) Delete(ctx context.Context, id int64) error {
	count, err := s.customerRepo.CountSales(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if count > 0 {
		s.logger.Warn().Int64("customer_id", id).Int64("sales", count).Msg("refusing to delete customer with sales")
		return model.ErrCustomerInUse
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if _, ok := model.AsDomainError(err); ok {
			return err
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.logger.Info().Int64("customer_id", id).Msg("customer deleted")
	return nil
}

func applyCustomerDefaults(c *model.Customer) {
	if c.Segment == "" {
		c.Segment = model.SegmentRegular
	}
	if c.JoinDate.IsZero() {
		c.JoinDate = model.Today()
	}
}
