package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Gubchik123/LapZone/api/routes"
	"github.com/Gubchik123/LapZone/internal/cartsession"
	"github.com/Gubchik123/LapZone/internal/catalog"
	"github.com/Gubchik123/LapZone/internal/likes"
	"github.com/Gubchik123/LapZone/internal/upstream"
	"github.com/Gubchik123/LapZone/pkg/config"
	"github.com/Gubchik123/LapZone/pkg/db"
	"github.com/Gubchik123/LapZone/pkg/logger"
	"github.com/Gubchik123/LapZone/pkg/metrics"
	"github.com/Gubchik123/LapZone/pkg/migrate"
	"github.com/Gubchik123/LapZone/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	upstreamClient, err := upstream.NewClient(cfg.Upstream, logg, storefrontMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create upstream client", err)
		os.Exit(1)
	}

	sessionManager, err := cartsession.NewManager(cfg.Cart.SessionTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}
	defer sessionManager.Close()

	cartService, err := cartsession.NewService(
		sessionManager,
		catalog.NewRepository(dbClient.DB()),
		upstreamClient,
		logg,
		storefrontMetrics,
		cfg.Cart,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart session service", err)
		os.Exit(1)
	}

	likesService, err := likes.NewService(upstreamClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create likes service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, cartService, likesService, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
