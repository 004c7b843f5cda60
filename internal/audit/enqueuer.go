// Package audit hands committed deletes to the archive worker through asynq.
package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"workly/internal/logctx"
	"workly/internal/metrics"
	"workly/internal/store"
	"workly/internal/tasks"
)

const maxRetry = 5

// taskEnqueuer is satisfied by *asynq.Client.
type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Enqueuer implements store.DeletionArchiver.
type Enqueuer struct {
	client taskEnqueuer
	logger *slog.Logger
}

func NewEnqueuer(client taskEnqueuer, logger *slog.Logger) *Enqueuer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enqueuer{client: client, logger: logger}
}

var _ store.DeletionArchiver = (*Enqueuer)(nil)

// ArchiveDeletion enqueues d on the audit queue.
func (e *Enqueuer) ArchiveDeletion(ctx context.Context, d store.Deletion) error {
	task, err := tasks.NewArchiveDeletionTask(d, logctx.CorrelationID(ctx))
	if err != nil {
		return fmt.Errorf("build archive task: %w", err)
	}

	info, err := e.client.EnqueueContext(ctx, task,
		asynq.Queue(tasks.QueueAudit),
		asynq.MaxRetry(maxRetry),
	)
	if err != nil {
		return fmt.Errorf("enqueue archive task: %w", err)
	}

	metrics.TaskEnqueued(tasks.TypeArchiveDeletion)
	logctx.Logger(ctx, e.logger).Debug("archive task enqueued",
		slog.String("task_id", info.ID),
		slog.String("entity", d.Entity),
		slog.Uint64("id", uint64(d.ID)),
	)
	return nil
}
