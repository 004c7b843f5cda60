package store

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"workly/internal/database"
	"workly/internal/logctx"
	"workly/internal/metrics"
)

// JobFields are the mutable columns of a job. An empty status means open.
type JobFields struct {
	Title       string             `json:"title" validate:"required,max=50"`
	Description string             `json:"description" validate:"max=500"`
	Location    string             `json:"location" validate:"required,max=100"`
	Salary      int                `json:"salary" validate:"gt=0"`
	Status      database.JobStatus `json:"status" validate:"required,oneof=open closed"`
}

func (f JobFields) normalized() JobFields {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Location = strings.TrimSpace(f.Location)
	f.Status = database.JobStatus(strings.ToLower(strings.TrimSpace(string(f.Status))))
	if f.Status == "" {
		f.Status = database.JobStatusOpen
	}
	return f
}

// JobFilter narrows ListJobs. Text fields match case-insensitive substrings;
// zero values are ignored.
type JobFilter struct {
	Title      string
	Location   string
	Employer   string
	EmployerID uint
	Status     database.JobStatus
}

// GetJob returns the job with id.
func (s *Store) GetJob(ctx context.Context, id uint) (*database.Job, error) {
	var job database.Job
	if err := s.db.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, s.fail(ctx, entityJob, err)
	}
	return &job, nil
}

// ListJobs returns matching jobs, most recent first.
func (s *Store) ListJobs(ctx context.Context, filter JobFilter, page Page) ([]database.Job, error) {
	q := s.db.WithContext(ctx).Model(&database.Job{})
	if strings.TrimSpace(filter.Title) != "" {
		q = q.Where("LOWER(jobs.title)"+likeEscaped, containsPattern(filter.Title))
	}
	if strings.TrimSpace(filter.Location) != "" {
		q = q.Where("LOWER(jobs.location)"+likeEscaped, containsPattern(filter.Location))
	}
	if strings.TrimSpace(filter.Employer) != "" {
		q = q.Joins("JOIN employers ON employers.id = jobs.employer_id").
			Where("LOWER(employers.name)"+likeEscaped, containsPattern(filter.Employer))
	}
	if filter.EmployerID != 0 {
		q = q.Where("jobs.employer_id = ?", filter.EmployerID)
	}
	if filter.Status != "" {
		q = q.Where("jobs.status = ?", filter.Status)
	}

	jobs := make([]database.Job, 0)
	q = q.Order("jobs.created_at DESC").Order("jobs.id DESC")
	if err := page.apply(q).Find(&jobs).Error; err != nil {
		return nil, s.fail(ctx, entityJob, err)
	}
	return jobs, nil
}

// CreateJob posts a job for employerID and, in the same transaction, records
// the job-posted notification.
func (s *Store) CreateJob(ctx context.Context, employerID uint, fields JobFields) (*database.Job, error) {
	fields = fields.normalized()
	if err := checkFields(entityJob, fields); err != nil {
		return nil, s.fail(ctx, entityJob, err)
	}

	var (
		job          database.Job
		notification *database.Notification
	)
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var employer database.Employer
		if err := forShare(tx).First(&employer, employerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return missingParent(entityJob, "employer_id", employerID)
			}
			return err
		}

		now := s.timestamp()
		job = database.Job{
			Base:        database.Base{CreatedAt: now, UpdatedAt: now},
			Title:       fields.Title,
			Description: fields.Description,
			Location:    fields.Location,
			Salary:      fields.Salary,
			Status:      fields.Status,
			EmployerID:  employer.ID,
		}
		if err := tx.Create(&job).Error; err != nil {
			return err
		}

		var err error
		notification, err = s.jobPosted(tx, &job, &employer)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, entityJob, err)
	}

	metrics.NotificationCreated()
	logctx.Logger(ctx, s.logger).Info("job posted",
		slog.Uint64("job_id", uint64(job.ID)),
		slog.Uint64("employer_id", uint64(job.EmployerID)),
		slog.Uint64("notification_id", uint64(notification.ID)),
	)
	return &job, nil
}

// UpdateJob replaces the mutable fields of job id. The employer cannot change.
func (s *Store) UpdateJob(ctx context.Context, id uint, fields JobFields) (*database.Job, error) {
	fields = fields.normalized()
	if err := checkFields(entityJob, fields); err != nil {
		return nil, s.fail(ctx, entityJob, err)
	}

	var job database.Job
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&job, id).Error; err != nil {
			return err
		}
		updates := map[string]any{
			"title":       fields.Title,
			"description": fields.Description,
			"location":    fields.Location,
			"salary":      fields.Salary,
			"status":      fields.Status,
			"updated_at":  s.touch(job.UpdatedAt),
		}
		if err := tx.Model(&job).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&job, id).Error
	})
	if err != nil {
		return nil, s.fail(ctx, entityJob, err)
	}
	return &job, nil
}

// DeleteJob removes job id with its applications and notifications.
func (s *Store) DeleteJob(ctx context.Context, id uint) (*database.Job, error) {
	var job database.Job
	deletion := Deletion{Entity: entityJob, ID: id}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&job, id).Error; err != nil {
			return err
		}
		c := cascade{tx: tx, deletion: &deletion}
		if err := c.jobDependents([]uint{id}); err != nil {
			return err
		}
		return tx.Delete(&database.Job{}, id).Error
	})
	if err != nil {
		return nil, s.fail(ctx, entityJob, err)
	}

	deletion.Record = job
	s.finishDeletion(ctx, deletion)
	logctx.Logger(ctx, s.logger).Info("job deleted",
		slog.Uint64("job_id", uint64(id)),
		slog.Int("rows", deletion.RowCount()),
	)
	return &job, nil
}
