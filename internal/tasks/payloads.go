package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"workly/internal/store"
)

// Task types shared by the API (producer) and the worker (consumer).
const (
	TypeArchiveDeletion = "audit:archive_deletion"
)

// QueueAudit is the asynq queue audit tasks are sent to.
const QueueAudit = "audit"

// ArchiveDeletionPayload carries one committed delete to the archive worker.
type ArchiveDeletionPayload struct {
	CorrelationID string         `json:"correlation_id"`
	Deletion      store.Deletion `json:"deletion"`
}

// NewArchiveDeletionTask builds the task archiving d.
func NewArchiveDeletionTask(d store.Deletion, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ArchiveDeletionPayload{
		CorrelationID: correlationID,
		Deletion:      d,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeArchiveDeletion, payload), nil
}
