package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpapi "restaurant-storefront/analytics-svc/internal/api/http"
	"restaurant-storefront/analytics-svc/internal/service"
	"restaurant-storefront/analytics-svc/internal/storage"
	"restaurant-storefront/config"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// newOrderSource follows the shop's STORAGE_DRIVER so both read the same order log.
func newOrderSource(driver string, logger *zap.SugaredLogger) (service.OrderSource, func(), error) {
	switch driver {
	case "", "memory":
		url := config.GetString("SHOP_SVC_URL", "http://localhost:8081")
		logger.Infow("shop uses in-process storage, reading orders from its admin api", "url", url)
		client := &http.Client{Timeout: config.GetDuration("UPSTREAM_TIMEOUT", 15*time.Second)}
		return storage.NewShopOrderSource(client, url, config.GetString("SHOP_ADMIN_TOKEN", "analytics")), func() {}, nil
	case "postgres":
		db := config.MustInitPostgres(logger)
		return storage.NewPostgresOrderSource(db), func() { db.Close() }, nil
	case "redis":
		rdb := config.MustInitRedis(logger)
		return storage.NewRedisOrderSource(rdb, config.GetString("REDIS_PREFIX", "shop:")), func() { rdb.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// newCounters connects to Redis only when REDIS_HOST is set.
func newCounters(logger *zap.SugaredLogger) (service.CounterSource, func()) {
	if config.GetString("REDIS_HOST", "") == "" {
		logger.Infow("redis not configured, top-today reads the order log")
		return nil, func() {}
	}
	rdb := config.MustInitRedis(logger)
	return storage.NewRedisCounters(rdb), func() { rdb.Close() }
}

func main() {
	config.Load()
	logger := config.NewLogger(config.GetString("ENV", "production"))
	defer logger.Sync()

	orders, closeOrders, err := newOrderSource(config.GetString("STORAGE_DRIVER", "memory"), logger)
	if err != nil {
		logger.Fatalw("failed to initialise order source", "error", err)
	}
	defer closeOrders()

	counters, closeCounters := newCounters(logger)
	defer closeCounters()

	svc := service.NewAnalyticsService(orders, counters, time.Now, logger)
	server := &http.Server{
		Addr:    config.GetString("ADDR", ":8083"),
		Handler: httpapi.NewRouter(httpapi.NewHandler(svc, time.Now, logger)),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Infow("analytics service starting", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalw("server stopped", "error", err)
	}
}
