package main

import (
	"context"
	"database/sql"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	apihttp "goldlink-backend/internal/api/http"
	"goldlink-backend/internal/api/ws"
	"goldlink-backend/internal/cache"
	"goldlink-backend/internal/config"
	"goldlink-backend/internal/jobs"
	"goldlink-backend/internal/logger"
	"goldlink-backend/internal/repository/postgres"
	"goldlink-backend/internal/scheduler"
	"goldlink-backend/internal/security"
	"goldlink-backend/internal/service"
	"goldlink-backend/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	// Optional in production, convenient in dev.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	log := logger.WithService("server")

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.PingContext(ctx); err != nil {
		cancel()
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	cancel()

	store := postgres.NewStore(db)

	// Redis is optional: without it views are simply not counted.
	var views *cache.ViewCounter
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("redis unreachable, view counting disabled", "error", err)
		} else {
			views = cache.NewViewCounter(rdb)
		}
		pingCancel()
	}

	var uploads storage.Backend
	localDir := ""
	switch cfg.Storage.Type {
	case "s3":
		uploads, err = storage.NewS3Backend(
			cfg.Storage.S3Bucket, cfg.Storage.S3Region, cfg.Storage.S3Endpoint,
			cfg.Storage.S3AccessKey, cfg.Storage.S3SecretKey)
	default:
		var local *storage.LocalBackend
		local, err = storage.NewLocalBackend(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if local != nil {
			uploads = local
			localDir = local.Dir()
		}
	}
	if err != nil {
		log.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}

	tokens := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	email := service.NewEmailSender(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	hub := ws.NewHub()

	server := apihttp.NewServer(apihttp.ServerParams{
		Auth:         service.NewAuthService(store, tokens, email),
		Admin:        service.NewAdminService(store),
		Jewelry:      service.NewJewelryService(store, store, views),
		Bookings:     service.NewBookingService(store, store, store, store, email),
		Transactions: service.NewTransactionService(store),
		Estimations:  service.NewEstimationService(store),
		Reviews:      service.NewReviewService(store, store, store),
		Messages:     service.NewMessageService(store, store, hub),

		Tokens:  tokens,
		Hub:     hub,
		Uploads: uploads,

		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxUploadMB:    cfg.Storage.MaxFileSize,
		LocalUploadDir: localDir,
	})

	runner := jobs.NewRunner(store, store, views, cfg.Booking.PendingExpiryDays, cfg.Booking.OverdueGraceDays)
	sched, err := scheduler.New(runner, cfg.Scheduler)
	if err != nil {
		log.Error("failed to set up scheduler", "error", err)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	httpServer := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("http server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
