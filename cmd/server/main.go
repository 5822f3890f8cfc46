package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"

	"karak-pos/internal/alert"
	"karak-pos/internal/api"
	"karak-pos/internal/archive"
	"karak-pos/internal/auth"
	"karak-pos/internal/config"
	"karak-pos/internal/db"
	"karak-pos/internal/expense"
	"karak-pos/internal/ledger"
	"karak-pos/internal/logger"
	"karak-pos/internal/loyalty"
	"karak-pos/internal/order"
	"karak-pos/internal/pricing"
	"karak-pos/internal/report"
	"karak-pos/internal/shift"
	"karak-pos/internal/store"
)

// autoSeparatorInterval is how often the background sweep checks for
// an idle counter.
const autoSeparatorInterval = 30 * time.Second

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to ping redis: %v", err)
	}
	st := store.NewRedis(rdb)

	database := db.InitDB(cfg)
	defer database.Close()

	authSvc := auth.NewService(cfg)
	repo := order.NewRepository(st)
	costs := pricing.NewService(st)
	thermos := ledger.NewThermosService(st)
	inventory := ledger.NewInventoryService(st)
	loyal := loyalty.NewService(st)
	alerts := alert.NewService(st)
	expenses := expense.NewService(st, costs, inventory)
	reports := report.NewService(repo, expenses, st)
	orders := order.NewService(repo, costs, thermos, inventory, loyal, alerts, st)

	if err := thermos.Init(context.Background()); err != nil {
		log.Fatalf("Failed to init thermos record: %v", err)
	}

	server := &api.Server{
		Auth:      authSvc,
		Orders:    orders,
		Costs:     costs,
		Thermos:   thermos,
		Inventory: inventory,
		Timers:    ledger.NewTimerService(st),
		Loyalty:   loyal,
		Expenses:  expenses,
		Reports:   reports,
		Shift:     shift.NewService(reports, loyal, thermos, st),
		Archive:   archive.NewService(repo, archive.NewRepository(database), st),
		Alerts:    alerts,
		Store:     st,
	}

	go runAutoSeparator(context.Background(), orders)

	log.Printf("🚀 POS server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, server.Router()))
}

// runAutoSeparator closes the open order group after the counter has
// been idle, so the next car's drinks start a fresh group even when
// nobody taps the separator button.
func runAutoSeparator(ctx context.Context, orders order.Service) {
	ticker := time.NewTicker(autoSeparatorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if _, err := orders.EnsureAutoSeparator(ctx); err != nil {
				logger.L().Warn("auto separator sweep failed")
			}
		case <-ctx.Done():
			return
		}
	}
}
