package main

import (
	"context"
	"os/signal"
	"syscall"

	"restaurant-storefront/agg-svc/internal/service"
	"restaurant-storefront/agg-svc/internal/storage"
	"restaurant-storefront/config"
)

func main() {
	config.Load()
	logger := config.NewLogger(config.GetString("ENV", "production"))
	defer logger.Sync()

	rdb := config.MustInitRedis(logger)
	defer rdb.Close()

	reader := config.NewKafkaReader(config.GetString("KAFKA_TOPIC", "order-events"), "agg-svc-consumer")
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	service.NewConsumer(reader, storage.NewStore(rdb), logger).Start(ctx)
}
