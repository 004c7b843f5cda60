package store

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"workly/internal/database"
	"workly/internal/logctx"
	"workly/internal/metrics"
)

// Deletion describes one committed delete and every row it took with it.
type Deletion struct {
	Entity          string    `json:"entity"`
	ID              uint      `json:"id"`
	Record          any       `json:"record"`
	JobIDs          []uint    `json:"job_ids,omitempty"`
	ResumeIDs       []uint    `json:"resume_ids,omitempty"`
	ApplicationIDs  []uint    `json:"application_ids,omitempty"`
	NotificationIDs []uint    `json:"notification_ids,omitempty"`
	DeletedAt       time.Time `json:"deleted_at"`
}

// RowCount is the number of rows removed, the root row included.
func (d Deletion) RowCount() int {
	return 1 + len(d.JobIDs) + len(d.ResumeIDs) + len(d.ApplicationIDs) + len(d.NotificationIDs)
}

// DeletionArchiver receives deletes after they commit. Its errors are logged,
// never returned to the caller of the delete.
type DeletionArchiver interface {
	ArchiveDeletion(ctx context.Context, d Deletion) error
}

// cascade removes children before parents inside one transaction and records
// the ids it removed.
type cascade struct {
	tx       *gorm.DB
	deletion *Deletion
}

// employerJobs removes every job of employerID and their dependents.
func (c *cascade) employerJobs(employerID uint) error {
	var jobIDs []uint
	err := forUpdate(c.tx).Model(&database.Job{}).
		Where("employer_id = ?", employerID).
		Order("id").
		Pluck("id", &jobIDs).Error
	if err != nil {
		return err
	}
	if len(jobIDs) == 0 {
		return nil
	}
	if err := c.jobDependents(jobIDs); err != nil {
		return err
	}
	if err := c.tx.Where("id IN ?", jobIDs).Delete(&database.Job{}).Error; err != nil {
		return err
	}
	c.deletion.JobIDs = append(c.deletion.JobIDs, jobIDs...)
	return nil
}

// jobDependents removes the applications and notifications of jobIDs.
func (c *cascade) jobDependents(jobIDs []uint) error {
	var applicationIDs []uint
	err := c.tx.Model(&database.Application{}).
		Where("job_id IN ?", jobIDs).
		Order("id").
		Pluck("id", &applicationIDs).Error
	if err != nil {
		return err
	}
	if err := c.applications(applicationIDs); err != nil {
		return err
	}

	var notificationIDs []uint
	err = c.tx.Model(&database.Notification{}).
		Where("job_id IN ?", jobIDs).
		Order("id").
		Pluck("id", &notificationIDs).Error
	if err != nil {
		return err
	}
	if len(notificationIDs) > 0 {
		if err := c.tx.Where("id IN ?", notificationIDs).Delete(&database.Notification{}).Error; err != nil {
			return err
		}
		c.deletion.NotificationIDs = append(c.deletion.NotificationIDs, notificationIDs...)
	}
	return nil
}

// applicantResumes removes every resume of applicantID and their applications.
func (c *cascade) applicantResumes(applicantID uint) error {
	var resumeIDs []uint
	err := forUpdate(c.tx).Model(&database.Resume{}).
		Where("applicant_id = ?", applicantID).
		Order("id").
		Pluck("id", &resumeIDs).Error
	if err != nil {
		return err
	}
	if len(resumeIDs) == 0 {
		return nil
	}
	if err := c.resumeDependents(resumeIDs); err != nil {
		return err
	}
	if err := c.tx.Where("id IN ?", resumeIDs).Delete(&database.Resume{}).Error; err != nil {
		return err
	}
	c.deletion.ResumeIDs = append(c.deletion.ResumeIDs, resumeIDs...)
	return nil
}

// resumeDependents removes the applications referencing resumeIDs.
func (c *cascade) resumeDependents(resumeIDs []uint) error {
	var applicationIDs []uint
	err := c.tx.Model(&database.Application{}).
		Where("resume_id IN ?", resumeIDs).
		Order("id").
		Pluck("id", &applicationIDs).Error
	if err != nil {
		return err
	}
	return c.applications(applicationIDs)
}

func (c *cascade) applications(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := c.tx.Where("id IN ?", ids).Delete(&database.Application{}).Error; err != nil {
		return err
	}
	c.deletion.ApplicationIDs = append(c.deletion.ApplicationIDs, ids...)
	return nil
}

// finishDeletion runs after commit: metrics, then the archiver.
func (s *Store) finishDeletion(ctx context.Context, d Deletion) {
	d.DeletedAt = s.timestamp()

	metrics.RowsDeleted(tableFor(d.Entity), 1)
	metrics.RowsDeleted("jobs", len(d.JobIDs))
	metrics.RowsDeleted("resumes", len(d.ResumeIDs))
	metrics.RowsDeleted("applications", len(d.ApplicationIDs))
	metrics.RowsDeleted("notifications", len(d.NotificationIDs))

	if s.archiver == nil {
		return
	}
	if err := s.archiver.ArchiveDeletion(ctx, d); err != nil {
		metrics.ArchiveFailed()
		logctx.Logger(ctx, s.logger).Warn("archive deletion failed",
			slog.String("entity", d.Entity),
			slog.Uint64("id", uint64(d.ID)),
			slog.Any("error", err),
		)
	}
}

func tableFor(entity string) string {
	switch entity {
	case entityEmployer:
		return "employers"
	case entityJob:
		return "jobs"
	case entityApplicant:
		return "applicants"
	case entityResume:
		return "resumes"
	case entityApplication:
		return "applications"
	default:
		return entity
	}
}
