// Package store is the entity access layer: typed CRUD over the job-board
// tables with validation, explicit cascades and the job-posted notification.
package store

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"workly/internal/database"
	"workly/internal/logctx"
	"workly/internal/metrics"
)

const (
	entityEmployer     = "employer"
	entityJob          = "job"
	entityApplicant    = "applicant"
	entityResume       = "resume"
	entityApplication  = "application"
	entityNotification = "notification"
)

// Pagination bounds.
const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// Page selects a window of a listing by offset.
type Page struct {
	Skip  int
	Limit int
}

func (p Page) normalized() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Page) apply(q *gorm.DB) *gorm.DB {
	n := p.normalized()
	return q.Offset(n.Skip).Limit(n.Limit)
}

// jobPostedHook runs inside the job-creation transaction.
type jobPostedHook func(tx *gorm.DB, job *database.Job, employer *database.Employer) (*database.Notification, error)

// Store runs every operation in its own transaction on db.
type Store struct {
	db        *gorm.DB
	logger    *slog.Logger
	now       func() time.Time
	archiver  DeletionArchiver
	jobPosted jobPostedHook
}

// Option customises a Store.
type Option func(*Store)

// WithLogger sets the logger used for store events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithArchiver hands every committed delete to a.
func WithArchiver(a DeletionArchiver) Option {
	return func(s *Store) {
		s.archiver = a
	}
}

// New builds a Store over an already migrated database.
func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{
		db:     db,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.jobPosted = s.recordJobPosted
	return s
}

// Ping issues a no-op query; used by the liveness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.WithContext(ctx).Exec("SELECT 1").Error
}

func (s *Store) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// timestamp is the store clock, normalised to what PostgreSQL keeps.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// touch returns the next updated_at for a row last stamped at prev. It is
// always strictly after prev.
func (s *Store) touch(prev time.Time) time.Time {
	next := s.timestamp()
	if !next.After(prev) {
		next = prev.Add(time.Microsecond).UTC()
	}
	return next
}

// fail translates err, counts it and returns it.
func (s *Store) fail(ctx context.Context, entity string, err error) error {
	err = translate(entity, err)
	kind := KindName(err)
	metrics.StoreError(entity, kind)
	if kind == "internal" {
		logctx.Logger(ctx, s.logger).Error("store operation failed",
			slog.String("entity", entity),
			slog.Any("error", err),
		)
	}
	return err
}

func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func forShare(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "SHARE"})
}

// containsPattern builds a case-insensitive LIKE pattern; use with ESCAPE '\'.
func containsPattern(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

const likeEscaped = " LIKE ? ESCAPE '\\'"
