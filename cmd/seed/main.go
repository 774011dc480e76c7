package main

import (
	"context"
	"flag"
	"os"
	"time"

	"attendsync/internal/attendance"
	"attendsync/internal/campus"
	"attendsync/internal/config"
	"attendsync/internal/identity"
	"attendsync/internal/seed"
	"attendsync/internal/store"
)

// Seed loads the demo campus into Postgres.
func main() {
	reset := flag.Bool("reset", true, "empty every table before loading")
	flag.Parse()

	cfg := config.Load()
	logger := config.NewLogger(cfg, os.Stdout).With("component", "seed")
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := store.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := store.Migrate(ctx, db.Client); err != nil {
		logger.Error("migrate failed", "error", err)
		os.Exit(1)
	}
	if *reset {
		if err := store.Reset(ctx, db.Client); err != nil {
			logger.Error("reset failed", "error", err)
			os.Exit(1)
		}
		logger.Info("cleared existing data")
	}

	hash, err := identity.HashPassword(seed.DemoPassword)
	if err != nil {
		logger.Error("hash demo password", "error", err)
		os.Exit(1)
	}
	data := seed.Demo(time.Now().UTC(), hash)
	records := attendance.NewPostgres(db.Client)
	err = seed.Load(ctx, seed.Stores{
		Users:   identity.NewPostgres(db.Client),
		Catalog: campus.NewPostgres(db.Client),
		Windows: records,
		Records: records,
	}, data)
	if err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}

	for _, u := range data.Users {
		logger.Info("account ready", "email", u.Email, "role", u.Role(), "password", seed.DemoPassword)
	}
	for _, h := range data.Halls {
		logger.Info("hall ready", "name", h.Name, "mac_address", h.MACAddress)
	}
	logger.Info("seeding completed", "batches", len(data.Batches), "windows", len(data.Windows), "records", len(data.Records))
}
