package service

import (
	"context"
	"fmt"
	"slices"

	"bizintel/internal/model"
	"bizintel/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// saleService implements SaleService.
type saleService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	logger       zerolog.Logger
}

// NewSaleService creates a new sale service.
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	logger zerolog.Logger,
) SaleService {
	return &saleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		logger:       logger.With().Str("service", "sale").Logger(),
	}
}

// List retrieves sales with customer and product names, newest first.
func (s *saleService) List(ctx context.Context, filter model.SaleFilter) ([]model.SaleDetail, error) {
	if err := filter.Range.Validate(); err != nil {
		return nil, err
	}
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset)

	sales, err := s.saleRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("range", filter.Range.String()).Msg("failed to list sales")
		return nil, fmt.Errorf("failed to get sales: %w", err)
	}
	return sales, nil
}

// GetByID retrieves a single sale by ID.
func (s *saleService) GetByID(ctx context.Context, id int64) (*model.SaleDetail, error) {
	if id <= 0 {
		return nil, model.ErrSaleNotFound
	}

	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("sale_id", id).Msg("failed to get sale by ID")
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	if sale == nil {
		return nil, model.ErrSaleNotFound
	}
	return sale, nil
}

// Create records a sale and decrements the product stock.
func (s *saleService) Create(ctx context.Context, req *model.SaleRequest) (_ *model.SaleDetail, err error) {
	if err := validateSaleRequest(req); err != nil {
		return nil, err
	}

	// Lookups happen before the transaction: SQLite runs on a single connection.
	product, customer, err := s.lookup(ctx, req)
	if err != nil {
		return nil, err
	}

	sale := &model.Sale{
		Date:          req.Date,
		CustomerID:    customer.ID,
		ProductID:     product.ID,
		Quantity:      req.Quantity,
		Amount:        saleAmount(req, product.Price),
		PaymentMethod: req.PaymentMethod,
	}
	if sale.Date.IsZero() {
		sale.Date = model.Today()
	}
	if sale.PaymentMethod == "" {
		sale.PaymentMethod = model.PaymentCash
	}

	tx, err := s.saleRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}
	defer s.rollbackOnError(tx, &err)

	if err = s.saleRepo.Create(ctx, tx, sale); err != nil {
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}

	if err = s.productRepo.AdjustStock(ctx, tx, sale.ProductID, -sale.Quantity); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	if err = tx.Commit(); err != nil {
		s.logger.Error().Err(err).Int64("sale_id", sale.ID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}

	s.logger.Info().
		Int64("sale_id", sale.ID).
		Int64("product_id", sale.ProductID).
		Int("quantity", sale.Quantity).
		Float64("amount", sale.Amount).
		Msg("sale recorded")

	return &model.SaleDetail{Sale: *sale, CustomerName: customer.Name, ProductName: product.Name}, nil
}

// Update replaces a sale, returning the old quantity to stock and taking the new one.
func (s *saleService) Update(ctx context.Context, id int64, req *model.SaleRequest) (_ *model.SaleDetail, err error) {
	if err := validateSaleRequest(req); err != nil {
		return nil, err
	}

	product, customer, err := s.lookup(ctx, req)
	if err != nil {
		return nil, err
	}

	tx, err := s.saleRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}
	defer s.rollbackOnError(tx, &err)

	old, err := s.saleRepo.Find(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}
	if old == nil {
		return nil, model.ErrSaleNotFound
	}

	sale := &model.Sale{
		ID:            id,
		Date:          req.Date,
		CustomerID:    customer.ID,
		ProductID:     product.ID,
		Quantity:      req.Quantity,
		Amount:        saleAmount(req, product.Price),
		PaymentMethod: req.PaymentMethod,
	}
	if sale.Date.IsZero() {
		sale.Date = old.Date
	}
	if sale.PaymentMethod == "" {
		sale.PaymentMethod = old.PaymentMethod
	}

	if err = s.productRepo.AdjustStock(ctx, tx, old.ProductID, old.Quantity); err != nil {
		return nil, fmt.Errorf("failed to restore stock: %w", err)
	}

	if err = s.saleRepo.Update(ctx, tx, sale); err != nil {
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}

	if err = s.productRepo.AdjustStock(ctx, tx, sale.ProductID, -sale.Quantity); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	if err = tx.Commit(); err != nil {
		s.logger.Error().Err(err).Int64("sale_id", id).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to update sale: %w", err)
	}

	s.logger.Info().Int64("sale_id", id).Msg("sale updated")

	return &model.SaleDetail{Sale: *sale, CustomerName: customer.Name, ProductName: product.Name}, nil
}

// Delete removes a sale and restores the product stock.
func (s *saleService) Delete(ctx context.Context, id int64) (err error) {
	tx, err := s.saleRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	defer s.rollbackOnError(tx, &err)

	old, err := s.saleRepo.Find(ctx, tx, id)
	if err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	if old == nil {
		return model.ErrSaleNotFound
	}

	if err = s.saleRepo.Delete(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	if err = s.productRepo.AdjustStock(ctx, tx, old.ProductID, old.Quantity); err != nil {
		return fmt.Errorf("failed to restore stock: %w", err)
	}

	if err = tx.Commit(); err != nil {
		s.logger.Error().Err(err).Int64("sale_id", id).Msg("failed to commit transaction")
		return fmt.Errorf("failed to delete sale: %w", err)
	}

	s.logger.Info().Int64("sale_id", id).Int("restored", old.Quantity).Msg("sale deleted")
	return nil
}

// lookup loads the product and customer a sale request refers to.
func (s *saleService) lookup(ctx context.Context, req *model.SaleRequest) (*model.Product, *model.Customer, error) {
	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		s.logger.Warn().Int64("product_id", req.ProductID).Msg("sale references unknown product")
		return nil, nil, model.ErrProductNotFound
	}

	customer, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		s.logger.Warn().Int64("customer_id", req.CustomerID).Msg("sale references unknown customer")
		return nil, nil, model.ErrCustomerNotFound
	}

	return product, customer, nil
}

// rollbackOnError rolls tx back when *err is set on return.
func (s *saleService) rollbackOnError(tx repository.Tx, err *error) {
	if *err == nil {
		return
	}
	if rbErr := tx.Rollback(); rbErr != nil {
		s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
	}
}

func validateSaleRequest(req *model.SaleRequest) error {
	if req == nil {
		return model.ValidationError("sale request is required")
	}
	if req.Quantity <= 0 {
		return model.ErrInvalidQuantity
	}
	if req.Amount != nil && *req.Amount < 0 {
		return model.ValidationError("sale amount must not be negative")
	}
	if req.PaymentMethod != "" && !slices.Contains(model.PaymentMethods, req.PaymentMethod) {
		return model.ValidationError("payment method must be one of Cash, Credit Card, Debit Card or Bank Transfer")
	}
	return nil
}

// saleAmount returns the explicit amount of req, or price times quantity, rounded to cents.
func saleAmount(req *model.SaleRequest, price float64) float64 {
	amount := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(req.Quantity)))
	if req.Amount != nil {
		amount = decimal.NewFromFloat(*req.Amount)
	}
	return amount.Round(2).InexactFloat64()
}
