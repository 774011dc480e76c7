package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"attendsync/internal/config"
	"attendsync/internal/queue"
	"attendsync/internal/store"
	"attendsync/internal/tally"
)

// Worker consumes attendance.marked events and keeps per-window tallies in
// Redis for the admin tally endpoint.
func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg, os.Stdout).With("component", "worker")

	if cfg.QueueBackend != "redis" {
		logger.Error("worker needs QUEUE_BACKEND=redis; the memory queue is consumed inside the api process")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient := store.NewRedis(cfg.RedisAddr)
	defer redisClient.Close()
	if !redisClient.Healthy(ctx) {
		logger.Warn("redis not reachable yet; the consumer keeps retrying", "addr", cfg.RedisAddr)
	}

	q := queue.NewRedisQueue(redisClient.Client, "")
	counter := tally.NewRedisCounter(redisClient.Client, "")

	if err := tally.Consume(ctx, q, counter, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("worker stopped")
}
