package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workly/internal/logctx"
	"workly/internal/store"
	"workly/internal/tasks"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	f.opts = append(f.opts, opts)
	return &asynq.TaskInfo{ID: "task-1", Queue: tasks.QueueAudit, Type: task.Type()}, nil
}

func TestEnqueuer_ArchiveDeletion(t *testing.T) {
	client := &fakeEnqueuer{}
	e := NewEnqueuer(client, nil)
	ctx := logctx.WithCorrelationID(context.Background(), "corr-1")

	d := store.Deletion{
		Entity:          "job",
		ID:              7,
		Record:          map[string]any{"title": "Designer"},
		ApplicationIDs:  []uint{3, 4},
		NotificationIDs: []uint{9},
		DeletedAt:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, e.ArchiveDeletion(ctx, d))

	require.Len(t, client.tasks, 1)
	task := client.tasks[0]
	assert.Equal(t, tasks.TypeArchiveDeletion, task.Type())

	var payload tasks.ArchiveDeletionPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "corr-1", payload.CorrelationID)
	assert.Equal(t, "job", payload.Deletion.Entity)
	assert.EqualValues(t, 7, payload.Deletion.ID)
	assert.Equal(t, []uint{3, 4}, payload.Deletion.ApplicationIDs)
	assert.True(t, payload.Deletion.DeletedAt.Equal(d.DeletedAt))

	assert.Len(t, client.opts[0], 2)
}

func TestEnqueuer_PropagatesQueueErrors(t *testing.T) {
	client := &fakeEnqueuer{err: errors.New("redis down")}
	e := NewEnqueuer(client, nil)

	err := e.ArchiveDeletion(context.Background(), store.Deletion{Entity: "employer", ID: 1})
	require.Error(t, err)
	assert.ErrorContains(t, err, "redis down")
}
