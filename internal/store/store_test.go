package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"workly/internal/database"
)

var testDBSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:store_test_%d?mode=memory&cache=shared&_foreign_keys=on", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// stepClock advances one second on every reading.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type fakeArchiver struct {
	mu        sync.Mutex
	deletions []Deletion
	err       error
}

func (a *fakeArchiver) ArchiveDeletion(_ context.Context, d Deletion) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deletions = append(a.deletions, d)
	return a.err
}

func (a *fakeArchiver) last(t *testing.T) Deletion {
	t.Helper()
	a.mu.Lock()
	defer a.mu.Unlock()
	require.NotEmpty(t, a.deletions)
	return a.deletions[len(a.deletions)-1]
}

func newTestStore(t *testing.T, opts ...Option) (*Store, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	opts = append([]Option{WithClock(newStepClock().Now)}, opts...)
	return New(db, opts...), db
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func ptr(s string) *string {
	return &s
}

func mustEmployer(t *testing.T, s *Store, name, email string) *database.Employer {
	t.Helper()
	employer, err := s.CreateEmployer(context.Background(), EmployerFields{Name: name, Email: email})
	require.NoError(t, err)
	return employer
}

func mustJob(t *testing.T, s *Store, employerID uint, title string) *database.Job {
	t.Helper()
	job, err := s.CreateJob(context.Background(), employerID, JobFields{
		Title:    title,
		Location: "San Francisco",
		Salary:   100000,
	})
	require.NoError(t, err)
	return job
}

func mustApplicant(t *testing.T, s *Store, name, email string) *database.Applicant {
	t.Helper()
	applicant, err := s.CreateApplicant(context.Background(), ApplicantFields{Name: name, Email: email})
	require.NoError(t, err)
	return applicant
}

func mustResume(t *testing.T, s *Store, applicantID uint, body string) *database.Resume {
	t.Helper()
	resume, err := s.CreateResume(context.Background(), applicantID, ResumeFields{Resume: body})
	require.NoError(t, err)
	return resume
}

func mustApplication(t *testing.T, s *Store, jobID, resumeID uint) *database.Application {
	t.Helper()
	application, err := s.CreateApplication(context.Background(), jobID, resumeID, ApplicationFields{CoverLetter: "Hire me"})
	require.NoError(t, err)
	return application
}

func TestPage_Normalized(t *testing.T) {
	tests := []struct {
		name string
		in   Page
		want Page
	}{
		{name: "zero uses default limit", in: Page{}, want: Page{Skip: 0, Limit: DefaultLimit}},
		{name: "negative skip", in: Page{Skip: -3, Limit: 5}, want: Page{Skip: 0, Limit: 5}},
		{name: "limit capped", in: Page{Skip: 10, Limit: 10000}, want: Page{Skip: 10, Limit: MaxLimit}},
		{name: "negative limit", in: Page{Limit: -1}, want: Page{Limit: DefaultLimit}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.normalized())
		})
	}
}

func TestContainsPattern_EscapesWildcards(t *testing.T) {
	assert.Equal(t, `%engineer%`, containsPattern("  Engineer "))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%c:\\x%`, containsPattern(`C:\x`))
}

func TestTouch_StrictlyIncreases(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(nil, WithClock(func() time.Time { return fixed }))

	next := s.touch(fixed)
	assert.True(t, next.After(fixed))

	later := s.touch(fixed.Add(-time.Hour))
	assert.True(t, later.Equal(fixed))
}

func TestPing(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Ping(context.Background()))
}
