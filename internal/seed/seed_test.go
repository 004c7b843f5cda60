package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"workly/internal/database"
	"workly/internal/store"
)

func newTestStore(t *testing.T) (*store.Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:seed_test?mode=memory&cache=shared&_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return store.New(db), db
}

func TestRun_IsIdempotent(t *testing.T) {
	st, db := newTestStore(t)
	ctx := context.Background()

	first, err := Run(ctx, st, nil)
	require.NoError(t, err)
	second, err := Run(ctx, st, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	for _, model := range database.Models() {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		assert.EqualValues(t, 1, n, "%T", model)
	}

	notifications, err := st.ListNotifications(ctx, store.NotificationFilter{JobID: first.JobID}, store.Page{})
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "A new job was posted: Software Engineer at John Doe in San Francisco!", notifications[0].Message)

	application, err := st.GetApplication(ctx, first.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, database.ApplicationStatusPending, application.Status)
}
