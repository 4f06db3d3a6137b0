package service

import (
	"context"
	"fmt"
	"time"

	"bizintel/internal/analytics"
	"bizintel/internal/model"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardCacheKey = "dashboard"

	dashboardTopProducts   = 8
	dashboardRecent        = 20
	dashboardTopPerformers = 10
)

// DashboardConfig tunes the dashboard cache and query deadline.
// A zero TTL disables caching; a zero QueryTimeout means no deadline.
type DashboardConfig struct {
	TTL          time.Duration
	QueryTimeout time.Duration
}

type dashboardService struct {
	calc      analytics.Calculator
	inventory InventoryService
	cfg       DashboardConfig
	cache     *cache.Cache
	now       func() time.Time
	logger    zerolog.Logger
}

// NewDashboardService creates a dashboard service that caches its result for cfg.TTL.
func NewDashboardService(calc analytics.Calculator, inventory InventoryService, cfg DashboardConfig, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		calc:      calc,
		inventory: inventory,
		cfg:       cfg,
		cache:     cache.New(cfg.TTL, 2*cfg.TTL),
		now:       time.Now,
		logger:    logger.With().Str("service", "dashboard").Logger(),
	}
}

func (s *dashboardService) Load(ctx context.Context) (*model.Dashboard, error) {
	if cached, ok := s.cache.Get(dashboardCacheKey); ok {
		s.logger.Debug().Msg("dashboard served from cache")
		return cached.(*model.Dashboard), nil
	}
	return s.build(ctx)
}

func (s *dashboardService) Refresh(ctx context.Context) (*model.Dashboard, error) {
	s.cache.Delete(dashboardCacheKey)
	return s.build(ctx)
}

// build runs every dashboard query concurrently. Each goroutine writes its own field.
func (s *dashboardService) build(ctx context.Context) (*model.Dashboard, error) {
	if s.cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.QueryTimeout)
		defer cancel()
	}

	start := s.now()
	d := &model.Dashboard{GeneratedAt: start.UTC()}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		summary, err := s.calc.SalesSummary(ctx, model.DateRange{})
		if err != nil {
			return err
		}
		d.Summary = *summary
		return nil
	})
	g.Go(func() (err error) {
		d.Trend, err = s.calc.SalesTrend(ctx, model.PeriodWeekly)
		return err
	})
	g.Go(func() (err error) {
		d.TopProducts, err = s.calc.TopProducts(ctx, dashboardTopProducts)
		return err
	})
	g.Go(func() (err error) {
		d.Segments, err = s.calc.CustomerSegmentation(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.ProfitMargins, err = s.calc.ProfitMargin(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Recent, err = s.calc.RecentActivity(ctx, dashboardRecent)
		return err
	})
	g.Go(func() (err error) {
		d.TopPerformers, err = s.calc.TopPerformers(ctx, start, dashboardTopPerformers)
		return err
	})
	g.Go(func() (err error) {
		d.LowStock, err = s.inventory.LowStock(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to load dashboard")
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	if s.cfg.TTL > 0 {
		s.cache.SetDefault(dashboardCacheKey, d)
	}

	s.logger.Info().
		Dur("elapsed", s.now().Sub(start)).
		Float64("revenue", d.Summary.TotalRevenue).
		Msg("dashboard loaded")

	return d, nil
}
