package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"workly/internal/config"
	"workly/internal/logctx"
	"workly/internal/metrics"
	"workly/internal/storage"
	"workly/internal/tasks"
	"workly/internal/worker"
)

func main() {
	cfg := config.MustLoad()
	if err := cfg.ValidateStorage(); err != nil {
		log.Fatalf("invalid storage config: %v", err)
	}

	logger := logctx.NewLogger(cfg.IsDevelopment())
	slog.SetDefault(logger)

	storageClient, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}
	logger.Info("storage client ready", slog.String("bucket", cfg.MinIO.Bucket))

	redisAddr := cfg.Redis.Addr()
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}
	if err := redisClient.Close(); err != nil {
		logger.Error("close redis client failed", slog.Any("error", err))
	}

	server := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{
		Concurrency: 4,
		Queues:      map[string]int{tasks.QueueAudit: 1},
	})

	mux := asynq.NewServeMux()
	mux.Use(metrics.AsynqMetricsMiddleware())
	mux.Handle(tasks.TypeArchiveDeletion, worker.NewArchiveTaskHandler(storageClient, logger))

	logger.Info("worker service started", slog.String("redis_addr", redisAddr))
	if err := server.Run(mux); err != nil {
		logger.Error("worker server stopped", slog.Any("error", err))
	}
}
