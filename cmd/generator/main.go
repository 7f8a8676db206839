package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"myaccount/internal/config"
	"myaccount/internal/database"
	"myaccount/internal/logger"
	"myaccount/internal/repository"
	"myaccount/internal/seed"
)

var (
	clearExisting = flag.Bool("clear", false, "Delete the user's existing orders before importing")
	userID        = flag.Int64("user", 0, "User to import orders for (0 = ACCOUNT_USER_ID)")
	extra         = flag.Int("extra", 0, "Number of synthetic orders to generate on top of the seed")
	randSeed      = flag.Int64("seed", 0, "Random seed for synthetic orders (0 = time based)")
	dryRun        = flag.Bool("dry-run", false, "Show what would be imported without making changes")
)

func main() {
	flag.Parse()

	config.LoadDotEnv()
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	slog.Info("Starting order generator...")

	uid := *userID
	if uid == 0 {
		uid = cfg.AccountUserID
	}

	orders, err := seed.Orders()
	if err != nil {
		logger.Fatal("Failed to load seed orders", "error", err)
	}

	s := *randSeed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	gen := NewOrderGenerator(rand.New(rand.NewSource(s)), orders)
	orders = append(orders, gen.Generate(*extra)...)

	if *dryRun {
		for _, o := range orders {
			slog.Info("Would import order",
				"user_id", uid,
				"order_id", o.ID,
				"status", o.Status,
				"order_date", o.OrderDate,
				"tickets", len(o.Tickets))
		}
		slog.Info("Dry run completed", "orders", len(orders))
		return
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	repo := repository.NewOrderRepository(db)
	ctx := context.Background()

	if *clearExisting {
		n, err := repo.DeleteByUserID(ctx, uid)
		if err != nil {
			logger.Fatal("Failed to clear existing orders", "error", err)
		}
		slog.Info("Cleared existing orders", "user_id", uid, "deleted", n)
	}

	imported := 0
	for i := range orders {
		if err := repo.Create(ctx, uid, &orders[i]); err != nil {
			slog.Error("Failed to import order", "order_id", orders[i].ID, "error", err)
			continue
		}
		imported++
	}

	slog.Info("Order import completed", "user_id", uid, "imported", imported, "total", len(orders))
	if imported < len(orders) {
		os.Exit(1)
	}
}
