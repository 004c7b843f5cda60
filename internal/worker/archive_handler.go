package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7"

	"workly/internal/tasks"
)

// objectUploader is satisfied by *storage.Client.
type objectUploader interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error)
}

// ArchiveTaskHandler writes committed deletes to object storage as JSON.
type ArchiveTaskHandler struct {
	storage objectUploader
	logger  *slog.Logger
}

func NewArchiveTaskHandler(storage objectUploader, logger *slog.Logger) *ArchiveTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArchiveTaskHandler{storage: storage, logger: logger}
}

// ArchiveObjectKey is deletions/{entity}/{id}/{deleted-at unix nanos}.json.
func ArchiveObjectKey(p tasks.ArchiveDeletionPayload) string {
	d := p.Deletion
	return fmt.Sprintf("deletions/%s/%d/%d.json", d.Entity, d.ID, d.DeletedAt.UnixNano())
}

// ProcessTask implements asynq.Handler.
func (h *ArchiveTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload tasks.ArchiveDeletionPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.logger.Error("unmarshal task payload failed", slog.Any("error", err))
		return fmt.Errorf("decode payload: %w", asynq.SkipRetry)
	}
	if payload.Deletion.Entity == "" || payload.Deletion.ID == 0 {
		h.logger.Warn("archive task without entity, skipping")
		return nil
	}

	log := h.logger.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.String("entity", payload.Deletion.Entity),
		slog.Uint64("id", uint64(payload.Deletion.ID)),
	)

	body, err := json.MarshalIndent(payload.Deletion, "", "  ")
	if err != nil {
		return fmt.Errorf("encode deletion: %w", asynq.SkipRetry)
	}

	key := ArchiveObjectKey(payload)
	if _, err := h.storage.UploadFile(ctx, key, bytes.NewReader(body), int64(len(body)), "application/json"); err != nil {
		if isFinalAsynqAttempt(ctx) {
			log.Error("archive upload failed, giving up", slog.String("object", key), slog.Any("error", err))
		} else {
			log.Warn("archive upload failed, will retry", slog.String("object", key), slog.Any("error", err))
		}
		return err
	}

	log.Info("deletion archived", slog.String("object", key), slog.Int("rows", payload.Deletion.RowCount()))
	return nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
