package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"restaurant-storefront/analytics-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const ordersKey = "orders"

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// PostgresOrderSource reads the order log the shop writes into kv_blobs.
type PostgresOrderSource struct {
	DB *sql.DB
}

func NewPostgresOrderSource(db *sql.DB) *PostgresOrderSource {
	return &PostgresOrderSource{DB: db}
}

func (s *PostgresOrderSource) Orders(ctx context.Context) ([]domain.Order, error) {
	var raw []byte
	err := s.DB.QueryRowContext(ctx, "SELECT value FROM kv_blobs WHERE key = $1", ordersKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []domain.Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	return decodeOrders(raw)
}

// RedisOrderSource reads the order log when the shop stores blobs in Redis.
type RedisOrderSource struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisOrderSource(rdb *redis.Client, prefix string) *RedisOrderSource {
	return &RedisOrderSource{rdb: rdb, prefix: prefix}
}

func (s *RedisOrderSource) Orders(ctx context.Context) ([]domain.Order, error) {
	raw, err := s.rdb.Get(ctx, s.prefix+ordersKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	return decodeOrders(raw)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ShopOrderSource asks shop-svc's admin API for the order list. It serves
// shops running on in-process storage.
type ShopOrderSource struct {
	client  HTTPClient
	baseURL string
	token   string
}

func NewShopOrderSource(client HTTPClient, baseURL, token string) *ShopOrderSource {
	return &ShopOrderSource{client: client, baseURL: strings.TrimRight(baseURL, "/"), token: token}
}

func (s *ShopOrderSource) Orders(ctx context.Context) ([]domain.Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/admin/orders", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("load orders: shop-svc returned %d", resp.StatusCode)
	}
	return decodeOrders(body)
}

// decodeOrders accepts the versioned envelope and the legacy bare array.
func decodeOrders(raw []byte) ([]domain.Order, error) {
	orders := []domain.Order{}
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Version > 0 && len(env.Data) > 0 {
		raw = env.Data
	}
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}
