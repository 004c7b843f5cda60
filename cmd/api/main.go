package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"workly/internal/api"
	"workly/internal/audit"
	"workly/internal/config"
	"workly/internal/database"
	"workly/internal/logctx"
	"workly/internal/store"
)

func main() {
	cfg := config.MustLoad()

	logger := logctx.NewLogger(cfg.IsDevelopment())
	slog.SetDefault(logger)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}
	logger.Info("database ready", slog.String("driver", cfg.Database.Driver))

	storeOpts := []store.Option{store.WithLogger(logger)}
	if cfg.Audit.Enabled {
		asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Redis.Addr()})
		defer func() {
			if err := asynqClient.Close(); err != nil {
				logger.Error("close asynq client failed", slog.Any("error", err))
			}
		}()
		storeOpts = append(storeOpts, store.WithArchiver(audit.NewEnqueuer(asynqClient, logger)))
		logger.Info("deletion audit enabled", slog.String("redis_addr", cfg.Redis.Addr()))
	}
	st := store.New(db, storeOpts...)

	routeOpts := api.RouteOptions{WritesPerMinute: cfg.API.WritesPerMinute}
	if cfg.API.WritesPerMinute > 0 {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("close redis client failed", slog.Any("error", err))
			}
		}()
		routeOpts.RateCounter = redisClient
	}

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, st, routeOpts)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.API.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("api listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server stopped", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
	logger.Info("api stopped")
}
