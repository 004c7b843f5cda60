package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workly/internal/store"
	"workly/internal/tasks"
)

type fakeStorage struct {
	uploaded     map[string][]byte
	contentTypes map[string]string
	err          error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		uploaded:     map[string][]byte{},
		contentTypes: map[string]string{},
	}
}

func (s *fakeStorage) UploadFile(_ context.Context, objectName string, reader io.Reader, _ int64, contentType string) (*minio.UploadInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	b, _ := io.ReadAll(reader)
	s.uploaded[objectName] = b
	s.contentTypes[objectName] = contentType
	return &minio.UploadInfo{Key: objectName, Size: int64(len(b))}, nil
}

func newArchiveTask(t *testing.T, d store.Deletion) *asynq.Task {
	t.Helper()
	task, err := tasks.NewArchiveDeletionTask(d, "corr-1")
	require.NoError(t, err)
	return task
}

func TestArchiveTaskHandler_UploadsSnapshot(t *testing.T) {
	storage := newFakeStorage()
	h := NewArchiveTaskHandler(storage, nil)
	deletedAt := time.Date(2024, 3, 1, 12, 0, 0, 500, time.UTC)

	d := store.Deletion{
		Entity:          "employer",
		ID:              3,
		Record:          map[string]any{"name": "Apple"},
		JobIDs:          []uint{10, 11},
		NotificationIDs: []uint{20, 21},
		DeletedAt:       deletedAt,
	}
	require.NoError(t, h.ProcessTask(context.Background(), newArchiveTask(t, d)))

	key := "deletions/employer/3/" + "1709294400000000500" + ".json"
	require.Contains(t, storage.uploaded, key)
	assert.Equal(t, "application/json", storage.contentTypes[key])

	var archived store.Deletion
	require.NoError(t, json.Unmarshal(storage.uploaded[key], &archived))
	assert.Equal(t, []uint{10, 11}, archived.JobIDs)
	assert.Equal(t, "Apple", archived.Record.(map[string]any)["name"])
}

func TestArchiveTaskHandler_Errors(t *testing.T) {
	t.Run("bad payload is not retried", func(t *testing.T) {
		h := NewArchiveTaskHandler(newFakeStorage(), nil)
		err := h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeArchiveDeletion, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("upload failure is retried", func(t *testing.T) {
		storage := newFakeStorage()
		storage.err = errors.New("minio unavailable")
		h := NewArchiveTaskHandler(storage, nil)

		err := h.ProcessTask(context.Background(), newArchiveTask(t, store.Deletion{Entity: "job", ID: 1}))
		require.Error(t, err)
		assert.NotErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("empty deletion is dropped", func(t *testing.T) {
		storage := newFakeStorage()
		h := NewArchiveTaskHandler(storage, nil)

		require.NoError(t, h.ProcessTask(context.Background(), newArchiveTask(t, store.Deletion{})))
		assert.Empty(t, storage.uploaded)
	})
}
