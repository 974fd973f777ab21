package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"restaurant-storefront/api-gateway/internal/gateway"
	"restaurant-storefront/config"

	"github.com/rs/cors"
)

func newConfig() gateway.Config {
	return gateway.Config{
		ShopSvcURL:      config.GetString("SHOP_SVC_URL", "http://localhost:8081"),
		AnalyticsSvcURL: config.GetString("ANALYTICS_SVC_URL", "http://localhost:8083"),
		FrontendDir:     config.GetString("FRONTEND_DIR", "./frontend"),
	}
}

func main() {
	config.Load()
	logger := config.NewLogger(config.GetString("ENV", "production"))
	defer logger.Sync()

	client := &http.Client{Timeout: config.GetDuration("UPSTREAM_TIMEOUT", 15*time.Second)}
	gw := gateway.NewGateway(newConfig(), client, logger)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	server := &http.Server{
		Addr:    config.GetString("ADDR", ":8080"),
		Handler: c.Handler(gw.SetupRoutes()),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Infow("api gateway starting", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalw("server stopped", "error", err)
	}
}
