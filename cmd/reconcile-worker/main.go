package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/luminaretail/orders-backend/internal/cron"
	"github.com/luminaretail/orders-backend/internal/stock"
	"github.com/luminaretail/orders-backend/pkg/config"
	"github.com/luminaretail/orders-backend/pkg/db"
	"github.com/luminaretail/orders-backend/pkg/logger"
	"github.com/luminaretail/orders-backend/pkg/metrics"
	"github.com/luminaretail/orders-backend/pkg/migrate"
	"github.com/luminaretail/orders-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "reconcile-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "reconcile-worker",
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

	jobMetrics := metrics.NewJobMetrics(prometheus.DefaultRegisterer)
	stockMetrics := metrics.NewStockMetrics(prometheus.DefaultRegisterer)

	stockRepo := stock.NewRepository(dbClient.DB())
	reconciler, err := stock.NewReconciler(
		stockRepo,
		stock.NewOrderSource(dbClient.DB()),
		stock.NewCatalogBaseline(dbClient.DB()),
		logg,
		stockMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create stock reconciler", err)
		os.Exit(1)
	}

	syncJob, err := cron.NewStockSyncJob(reconciler, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create stock sync job", err)
		os.Exit(1)
	}

	lock, err := cron.NewRedisLock(redisClient, cfg.Reconcile.LockKey, cfg.Reconcile.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create worker lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(syncJob),
		Lock:     lock,
		Metrics:  jobMetrics,
		Interval: cfg.Reconcile.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create worker service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"interval": cfg.Reconcile.Interval.String(),
	})
	logg.Info(ctx, "starting reconcile worker")

	if addr := os.Getenv("LUMINA_METRICS_ADDR"); addr != "" {
		go serveMetrics(ctx, logg, addr)
	}

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "reconcile worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "reconcile worker shutting down gracefully")
}

func serveMetrics(ctx context.Context, logg *logger.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		server.Close()
	}()

	logg.Info(logg.WithFields(ctx, map[string]any{"metrics_addr": addr}), "metrics endpoint listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "metrics endpoint stopped unexpectedly", err)
	}
}
