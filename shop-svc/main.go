package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"restaurant-storefront/config"
	httpapi "restaurant-storefront/shop-svc/internal/api/http"
	"restaurant-storefront/shop-svc/internal/domain"
	"restaurant-storefront/shop-svc/internal/service"
	"restaurant-storefront/shop-svc/internal/storage"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// newStore picks the blob backend named by STORAGE_DRIVER.
func newStore(driver string, logger *zap.SugaredLogger) (storage.Store, func(), error) {
	switch driver {
	case "", "memory":
		return storage.NewMemoryStore(), func() {}, nil
	case "postgres":
		db := config.MustInitPostgres(logger)
		store := storage.NewPostgresStore(db)
		if err := store.EnsureSchema(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		return store, func() { db.Close() }, nil
	case "redis":
		client := config.MustInitRedis(logger)
		ttl := config.GetDuration("CHECKOUT_SESSION_TTL", 24*time.Hour)
		return storage.NewRedisStore(client, config.GetString("REDIS_PREFIX", "shop:"), ttl), func() { client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

func newPolicy(strict bool) domain.TransitionPolicy {
	if strict {
		return domain.StrictPolicy{}
	}
	return domain.PermissivePolicy{}
}

// newNotifier always logs events and also publishes them when a broker is configured.
func newNotifier(logger *zap.SugaredLogger) (service.Notifier, func()) {
	notifiers := service.MultiNotifier{service.LogNotifier{Logger: logger}}
	if config.GetString("KAFKA_BROKER", "") == "" {
		return notifiers, func() {}
	}
	writer := config.NewKafkaWriter(config.GetString("KAFKA_TOPIC", "order-events"))
	notifiers = append(notifiers, storage.NewKafkaNotifier(writer))
	return notifiers, func() { writer.Close() }
}

type app struct {
	handler *httpapi.Handler
	poller  *service.Poller
}

func newApp(repo *storage.BlobRepository, notifier service.Notifier, logger *zap.SugaredLogger) *app {
	ids := uuid.NewString
	clock := time.Now

	catalog := service.NewCatalogService(repo, ids, clock, logger)
	orders := service.NewOrderService(repo, newPolicy(config.GetBool("ORDER_STRICT_TRANSITIONS", false)), notifier, clock, logger)
	customers := service.NewCustomerService(repo, ids)
	settings := service.NewSettingsService(repo, ids, clock)
	checkout := service.NewCheckoutService(service.CheckoutDeps{
		Sessions:  repo,
		Catalog:   catalog,
		Orders:    orders,
		Customers: customers,
		Settings:  repo,
		Verifier:  service.StaticCodeVerifier{Code: config.GetString("PAYMENT_CODE", "1234")},
		Notifier:  notifier,
		Clock:     clock,
		IDs:       ids,
		Logger:    logger,
	})

	return &app{
		handler: &httpapi.Handler{
			Catalog:   catalog,
			Orders:    orders,
			Checkout:  checkout,
			Customers: customers,
			Settings:  settings,
			QR:        service.ReceiptQRGenerator{BaseURL: config.GetString("PUBLIC_URL", "http://localhost:8080")},
			Logger:    logger,
		},
		poller: service.NewPoller(repo, repo, notifier, clock, logger),
	}
}

func main() {
	config.Load()
	logger := config.NewLogger(config.GetString("ENV", "production"))
	defer logger.Sync()

	store, closeStore, err := newStore(config.GetString("STORAGE_DRIVER", "memory"), logger)
	if err != nil {
		logger.Fatalw("failed to initialise storage", "error", err)
	}
	defer closeStore()

	notifier, closeNotifier := newNotifier(logger)
	defer closeNotifier()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := newApp(storage.NewBlobRepository(store, logger), notifier, logger)
	a.poller.Start(ctx)
	defer a.poller.Stop()

	server := &http.Server{
		Addr:    config.GetString("ADDR", ":8081"),
		Handler: httpapi.NewRouter(a.handler),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Infow("shop service starting", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalw("server stopped", "error", err)
	}
}
