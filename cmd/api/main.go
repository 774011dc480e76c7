package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"attendsync/internal/attendance"
	"attendsync/internal/auth"
	"attendsync/internal/campus"
	"attendsync/internal/config"
	"attendsync/internal/httpapi"
	"attendsync/internal/httpmiddleware"
	"attendsync/internal/identity"
	"attendsync/internal/queue"
	"attendsync/internal/store"
	"attendsync/internal/tally"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg, logger); err != nil {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
}

type backends struct {
	users   identity.Store
	catalog campus.Store
	windows attendance.WindowStore
	records attendance.RecordStore
	health  []httpapi.HealthCheck
	closers []func() error
}

func openStores(ctx context.Context, cfg config.App, logger *slog.Logger) (*backends, error) {
	if cfg.StoreBackend == "memory" {
		logger.Warn("using in-memory store; data is lost on restart")
		mem := attendance.NewInMemory()
		return &backends{
			users:   identity.NewInMemory(),
			catalog: campus.NewInMemory(),
			windows: mem,
			records: mem,
		}, nil
	}

	db, err := store.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := store.Migrate(ctx, db.Client); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("postgres connected and migrated")
	pg := attendance.NewPostgres(db.Client)
	return &backends{
		users:   identity.NewPostgres(db.Client),
		catalog: campus.NewPostgres(db.Client),
		windows: pg,
		records: pg,
		health:  []httpapi.HealthCheck{{Name: "db", Check: db.Healthy}},
		closers: []func() error{db.Close},
	}, nil
}

func runHTTP(cfg config.App, logger *slog.Logger) error {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	b, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		for _, c := range b.closers {
			_ = c()
		}
	}()

	var (
		q       queue.Queue
		tallies tally.Counter
	)
	if cfg.QueueBackend == "memory" {
		mq := queue.NewInMemory(256)
		counter := tally.NewMemoryCounter()
		q, tallies = mq, counter
		go func() {
			if err := tally.Consume(ctx, mq, counter, logger); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("tally consumer stopped", "error", err)
			}
		}()
	} else {
		redisClient := store.NewRedis(cfg.RedisAddr)
		defer redisClient.Close()
		q = queue.NewRedisQueue(redisClient.Client, "")
		tallies = tally.NewRedisCounter(redisClient.Client, "")
		b.health = append(b.health, httpapi.HealthCheck{Name: "redis", Check: redisClient.Healthy})
	}

	signer := auth.NewSigner(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.AccessTTL)
	registry := attendance.NewRegistry(b.windows)
	engine := attendance.NewEngine(registry, b.records,
		attendance.WithMetrics(attendance.NewMetrics(prometheus.DefaultRegisterer)))

	r := httpapi.NewRouter(httpapi.Deps{
		Identity:    identity.NewService(b.users, signer, cfg.AllowedEmailDomain),
		Campus:      campus.NewService(b.catalog),
		Windows:     registry,
		Admission:   engine,
		Reports:     attendance.NewReports(b.records, cfg.Location),
		Events:      tally.NewPublisher(q),
		Tallies:     tallies,
		Health:      b.health,
		Metrics:     promhttp.Handler(),
		Logger:      logger,
		Limiter:     httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin),
		CORSOrigins: cfg.CORSOrigins,
		Production:  cfg.Production(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "store", cfg.StoreBackend, "queue", cfg.QueueBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		logger.Info("shutting down server")
	case err := <-serveErr:
		return err
	}

	// Give outstanding requests 10 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced shutdown", "error", err)
	}
	stop()

	logger.Info("server exited")
	return nil
}
