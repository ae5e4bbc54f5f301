// Command cronjob runs one maintenance job and exits. Intended for external
// schedulers (Kubernetes CronJob, systemd timers) as an alternative to the
// in-process scheduler.
package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"goldlink-backend/internal/cache"
	"goldlink-backend/internal/config"
	"goldlink-backend/internal/jobs"
	"goldlink-backend/internal/logger"
	"goldlink-backend/internal/repository/postgres"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	jobName := flag.String("job", "", "job to run: expire-pending, mark-overdue, flush-views")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := postgres.NewStore(db)

	var views *cache.ViewCounter
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		views = cache.NewViewCounter(rdb)
	}

	runner := jobs.NewRunner(store.BookingRepository, store.JewelryRepository, views, cfg.Booking.PendingExpiryDays, cfg.Booking.OverdueGraceDays)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	var jobErr error
	switch *jobName {
	case "expire-pending":
		jobErr = runner.ExpireStalePendingBookings(ctx)
	case "mark-overdue":
		jobErr = runner.MarkOverdueActiveBookings(ctx)
	case "flush-views":
		jobErr = runner.FlushJewelryViews(ctx)
	default:
		logger.Error("unknown job", "job", *jobName)
		os.Exit(2)
	}

	if jobErr != nil {
		logger.Error("job failed", "job", *jobName, "error", jobErr)
		os.Exit(1)
	}
	logger.Info("job completed", "job", *jobName)
}
