package storage

import (
	"context"
	"sort"
	"time"

	"restaurant-storefront/analytics-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	productNamesKey = "analytics:products"
	unseenOrdersKey = "orders:unseen"
)

// RedisCounters reads the rolling counters the aggregator maintains.
type RedisCounters struct {
	rdb *redis.Client
}

func NewRedisCounters(rdb *redis.Client) *RedisCounters {
	return &RedisCounters{rdb: rdb}
}

// TopOn merges every branch's sorted set for the day.
func (c *RedisCounters) TopOn(ctx context.Context, day time.Time, limit int) ([]domain.ProductRank, error) {
	pattern := "analytics:daily:" + day.Format("2006-01-02") + ":*"

	totals := make(map[string]float64)
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		members, err := c.rdb.ZRangeWithScores(ctx, iter.Val(), 0, -1).Result()
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			if id, ok := m.Member.(string); ok {
				totals[id] += m.Score
			}
		}
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	if len(totals) == 0 {
		return []domain.ProductRank{}, nil
	}

	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if totals[ids[i]] != totals[ids[j]] {
			return totals[ids[i]] > totals[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	names, err := c.rdb.HMGet(ctx, productNamesKey, ids...).Result()
	if err != nil {
		return nil, err
	}
	ranks := make([]domain.ProductRank, 0, len(ids))
	for i, id := range ids {
		name, _ := names[i].(string)
		ranks = append(ranks, domain.ProductRank{ProductID: id, Name: name, Quantity: int(totals[id])})
	}
	return ranks, nil
}

func (c *RedisCounters) UnseenCount(ctx context.Context) (int64, error) {
	return c.rdb.SCard(ctx, unseenOrdersKey).Result()
}
