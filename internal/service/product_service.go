package service

import (
	"context"
	"fmt"

	"bizintel/internal/model"
	"bizintel/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves products matching the filter.
func (s *productService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset)

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", filter.Limit).
			Int("offset", filter.Offset).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Str("search", filter.Search).
		Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if id <= 0 {
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Create validates and stores a new product.
func (s *productService) Create(ctx context.Context, p *model.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if err := s.productRepo.Create(ctx, p); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Int64("product_id", p.ID).Str("name", p.Name).Msg("product created")
	return nil
}

// Update validates and overwrites an existing product.
func (s *productService) Update(ctx context.Context, p *model.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if err := s.productRepo.Update(ctx, p); err != nil {
		if _, ok := model.AsDomainError(err); ok {
			return err
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info().Int64("product_id", p.ID).Msg("product updated")
	return nil
}

// Delete removes a product that no sale references.
func (s *productService) Delete(ctx context.Context, id int64) error {
	count, err := s.productRepo.CountSales(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if count > 0 {
		s.logger.Warn().Int64("product_id", id).Int64("sales", count).Msg("refusing to delete product with sales")
		return model.ErrProductInUse
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if _, ok := model.AsDomainError(err); ok {
			return err
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}
