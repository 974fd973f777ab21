package storage

import (
	"context"
	"time"

	"restaurant-storefront/agg-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const dailyRetention = 7 * 24 * time.Hour

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// RecordSale adds the order's units to the day's product ranking and its
// total to the day's revenue in one transaction.
func (s *Store) RecordSale(ctx context.Context, event domain.OrderEvent) error {
	salesKey := domain.DailySalesKey(event.At, event.BranchID)
	revenueKey := domain.DailyRevenueKey(event.At, event.BranchID)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, item := range event.Items {
			pipe.ZIncrBy(ctx, salesKey, float64(item.Quantity), item.ProductID)
			if item.Name != "" {
				pipe.HSet(ctx, domain.ProductNamesKey, item.ProductID, item.Name)
			}
		}
		pipe.IncrByFloat(ctx, revenueKey, event.Total.InexactFloat64())
		pipe.Expire(ctx, salesKey, dailyRetention)
		pipe.Expire(ctx, revenueKey, dailyRetention)
		return nil
	})
	return err
}

func (s *Store) MarkUnseen(ctx context.Context, orderID string) error {
	return s.rdb.SAdd(ctx, domain.UnseenOrdersKey, orderID).Err()
}

func (s *Store) MarkSeen(ctx context.Context, orderID string) error {
	return s.rdb.SRem(ctx, domain.UnseenOrdersKey, orderID).Err()
}
