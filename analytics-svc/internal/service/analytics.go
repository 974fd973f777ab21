package service

import (
	"context"
	"time"

	"restaurant-storefront/analytics-svc/internal/domain"

	"go.uber.org/zap"
)

type Clock func() time.Time

type AnalyticsService struct {
	orders   OrderSource
	counters CounterSource
	clock    Clock
	logger   *zap.SugaredLogger
}

// NewAnalyticsService accepts a nil counters source; TopToday then always
// reads the order log.
func NewAnalyticsService(orders OrderSource, counters CounterSource, clock Clock, logger *zap.SugaredLogger) *AnalyticsService {
	return &AnalyticsService{orders: orders, counters: counters, clock: clock, logger: logger}
}

func (s *AnalyticsService) Dashboard(ctx context.Context, r domain.Range) (domain.Dashboard, error) {
	orders, err := s.orders.Orders(ctx)
	if err != nil {
		return domain.Dashboard{}, err
	}
	return domain.Dashboard{
		Summary:            Summarize(orders, r),
		SalesByDate:        SalesByDate(orders, r),
		SalesByCategory:    SalesByCategory(orders, r),
		SalesByBranch:      SalesByBranch(orders, r),
		OrdersByHour:       OrdersByHour(orders, r),
		TopProducts:        TopProducts(orders, r, 10),
		StatusDistribution: StatusDistribution(orders, r),
	}, nil
}

func (s *AnalyticsService) Summary(ctx context.Context, r domain.Range) (domain.Summary, error) {
	orders, err := s.orders.Orders(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return Summarize(orders, r), nil
}

func (s *AnalyticsService) SalesByDate(ctx context.Context, r domain.Range) ([]domain.DatePoint, error) {
	orders, err := s.orders.Orders(ctx)
	if err != nil {
		return nil, err
	}
	return SalesByDate(orders, r), nil
}

func (s *AnalyticsService) SalesByCategory(ctx context.Context, r domain.Range) ([]domain.GroupPoint, error) {
	orders, err := s.orders.Orders(ctx)
	if err != nil {
		return nil, err
	}
	return SalesByCategory(orders, r), nil
}

func (s *AnalyticsService) SalesByBranch(ctx context.Context, r domain.Range) ([]domain.GroupPoint, error) {
	orders, err := s.orders.Orders(ctx)
	if err != nil {
		return nil, err
	}
	return SalesByBranch(orders, r), nil
}

func (s *AnalyticsService) OrdersByHour(ctx context.Context, r domain.Range) ([]domain.HourPoint, error) {
	orders, err := s.orders.Orders(ctx)
	if err != nil {
		return nil, err
	}
	return OrdersByHour(orders, r), nil
}

func (s *AnalyticsService) TopProducts(ctx context.Context, r domain.Range, limit int) ([]domain.ProductRank, error) {
	orders, err := s.orders.Orders(ctx)
	if err != nil {
		return nil, err
	}
	return TopProducts(orders, r, limit), nil
}

func (s *AnalyticsService) StatusDistribution(ctx context.Context, r domain.Range) (map[string]int, error) {
	orders, err := s.orders.Orders(ctx)
	if err != nil {
		return nil, err
	}
	return StatusDistribution(orders, r), nil
}

// TopToday prefers the aggregator's counters and falls back to the order log
// when they are empty or unreachable.
func (s *AnalyticsService) TopToday(ctx context.Context, limit int) ([]domain.ProductRank, error) {
	now := s.clock()
	if s.counters != nil {
		ranks, err := s.counters.TopOn(ctx, now, limit)
		if err == nil && len(ranks) > 0 {
			return ranks, nil
		}
		if err != nil {
			s.logger.Warnw("counter lookup failed, using order log", "error", err)
		}
	}
	return s.TopProducts(ctx, Today(now), limit)
}

// UnseenCount reads the aggregator's set, or counts flagged orders when
// Redis is not configured.
func (s *AnalyticsService) UnseenCount(ctx context.Context) (int64, error) {
	if s.counters != nil {
		return s.counters.UnseenCount(ctx)
	}
	orders, err := s.orders.Orders(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	for _, order := range orders {
		if order.IsNew {
			count++
		}
	}
	return count, nil
}

// Today spans the calendar day containing now.
func Today(now time.Time) domain.Range {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return domain.Range{From: start, To: start.AddDate(0, 0, 1)}
}

// LastDays ends at the close of today and covers n calendar days.
func LastDays(now time.Time, n int) domain.Range {
	today := Today(now)
	return domain.Range{From: today.To.AddDate(0, 0, -n), To: today.To}
}
