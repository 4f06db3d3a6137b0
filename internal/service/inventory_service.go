package service

import (
	"context"
	"fmt"

	"bizintel/internal/model"
	"bizintel/internal/repository"

	"github.com/rs/zerolog"
)

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	thresholds    model.StockThresholds
	logger        zerolog.Logger
}

// NewInventoryService creates a new inventory service labelling stock with thresholds.
func NewInventoryService(inventoryRepo repository.InventoryRepository, thresholds model.StockThresholds, logger zerolog.Logger) InventoryService {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		thresholds:    thresholds,
		logger:        logger.With().Str("service", "inventory").Logger(),
	}
}

func (s *inventoryService) Status(ctx context.Context) ([]model.InventoryStatus, error) {
	items, err := s.inventoryRepo.Status(ctx, s.thresholds)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory status: %w", err)
	}
	return items, nil
}

func (s *inventoryService) LowStock(ctx context.Context) ([]model.InventoryStatus, error) {
	items, err := s.Status(ctx)
	if err != nil {
		return nil, err
	}

	low := []model.InventoryStatus{}
	for _, item := range items {
		if item.Stock <= s.thresholds.Low {
			low = append(low, item)
		}
	}

	s.logger.Debug().Int("count", len(low)).Int("threshold", s.thresholds.Low).Msg("low stock products")
	return low, nil
}

func (s *inventoryService) Snapshot(ctx context.Context) (int64, error) {
	n, err := s.inventoryRepo.Snapshot(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to snapshot inventory: %w", err)
	}

	s.logger.Info().Int64("products", n).Msg("inventory snapshot recorded")
	return n, nil
}

func (s *inventoryService) History(ctx context.Context, productID int64, limit int) ([]model.InventoryRecord, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = 30
	}

	records, err := s.inventoryRepo.History(ctx, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory history: %w", err)
	}
	return records, nil
}
