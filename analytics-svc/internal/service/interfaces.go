package service

import (
	"context"
	"time"

	"restaurant-storefront/analytics-svc/internal/domain"
	"restaurant-storefront/analytics-svc/internal/storage"
)

type OrderSource interface {
	Orders(ctx context.Context) ([]domain.Order, error)
}

type CounterSource interface {
	TopOn(ctx context.Context, day time.Time, limit int) ([]domain.ProductRank, error)
	UnseenCount(ctx context.Context) (int64, error)
}

type AnalyticsInterface interface {
	Dashboard(ctx context.Context, r domain.Range) (domain.Dashboard, error)
	Summary(ctx context.Context, r domain.Range) (domain.Summary, error)
	SalesByDate(ctx context.Context, r domain.Range) ([]domain.DatePoint, error)
	SalesByCategory(ctx context.Context, r domain.Range) ([]domain.GroupPoint, error)
	SalesByBranch(ctx context.Context, r domain.Range) ([]domain.GroupPoint, error)
	OrdersByHour(ctx context.Context, r domain.Range) ([]domain.HourPoint, error)
	TopProducts(ctx context.Context, r domain.Range, limit int) ([]domain.ProductRank, error)
	StatusDistribution(ctx context.Context, r domain.Range) (map[string]int, error)
	TopToday(ctx context.Context, limit int) ([]domain.ProductRank, error)
	UnseenCount(ctx context.Context) (int64, error)
}

var (
	_ AnalyticsInterface = (*AnalyticsService)(nil)
	_ OrderSource        = (*storage.PostgresOrderSource)(nil)
	_ OrderSource        = (*storage.RedisOrderSource)(nil)
	_ OrderSource        = (*storage.ShopOrderSource)(nil)
	_ CounterSource      = (*storage.RedisCounters)(nil)
)
