package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"workly/internal/database"
)

// ApplicationFields are the mutable columns of an application. An empty
// status means pending.
type ApplicationFields struct {
	CoverLetter string                     `json:"cover_letter" validate:"max=1000"`
	Status      database.ApplicationStatus `json:"status" validate:"required,oneof=pending accepted rejected"`
}

func (f ApplicationFields) normalized() ApplicationFields {
	f.CoverLetter = strings.TrimSpace(f.CoverLetter)
	f.Status = database.ApplicationStatus(strings.ToLower(strings.TrimSpace(string(f.Status))))
	if f.Status == "" {
		f.Status = database.ApplicationStatusPending
	}
	return f
}

// ApplicationFilter narrows ListApplications; zero values are ignored.
// ApplicantID matches through the application's resume.
type ApplicationFilter struct {
	JobID       uint
	ResumeID    uint
	ApplicantID uint
	Status      database.ApplicationStatus
}

// GetApplication returns the application with id.
func (s *Store) GetApplication(ctx context.Context, id uint) (*database.Application, error) {
	var application database.Application
	if err := s.db.WithContext(ctx).First(&application, id).Error; err != nil {
		return nil, s.fail(ctx, entityApplication, err)
	}
	return &application, nil
}

// ListApplications returns matching applications, most recent first.
func (s *Store) ListApplications(ctx context.Context, filter ApplicationFilter, page Page) ([]database.Application, error) {
	q := s.db.WithContext(ctx).Model(&database.Application{})
	if filter.JobID != 0 {
		q = q.Where("applications.job_id = ?", filter.JobID)
	}
	if filter.ResumeID != 0 {
		q = q.Where("applications.resume_id = ?", filter.ResumeID)
	}
	if filter.ApplicantID != 0 {
		q = q.Joins("JOIN resumes ON resumes.id = applications.resume_id").
			Where("resumes.applicant_id = ?", filter.ApplicantID)
	}
	if filter.Status != "" {
		q = q.Where("applications.status = ?", filter.Status)
	}

	applications := make([]database.Application, 0)
	q = q.Order("applications.created_at DESC").Order("applications.id DESC")
	if err := page.apply(q).Find(&applications).Error; err != nil {
		return nil, s.fail(ctx, entityApplication, err)
	}
	return applications, nil
}

// CreateApplication files resumeID against jobID.
func (s *Store) CreateApplication(ctx context.Context, jobID, resumeID uint, fields ApplicationFields) (*database.Application, error) {
	fields = fields.normalized()
	if err := checkFields(entityApplication, fields); err != nil {
		return nil, s.fail(ctx, entityApplication, err)
	}

	var application database.Application
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var job database.Job
		if err := forShare(tx).First(&job, jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return missingParent(entityApplication, "job_id", jobID)
			}
			return err
		}
		var resume database.Resume
		if err := forShare(tx).First(&resume, resumeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return missingParent(entityApplication, "resume_id", resumeID)
			}
			return err
		}

		now := s.timestamp()
		application = database.Application{
			Base:        database.Base{CreatedAt: now, UpdatedAt: now},
			CoverLetter: fields.CoverLetter,
			Status:      fields.Status,
			JobID:       job.ID,
			ResumeID:    resume.ID,
		}
		return tx.Create(&application).Error
	})
	if err != nil {
		return nil, s.fail(ctx, entityApplication, err)
	}
	return &application, nil
}

// UpdateApplication replaces the cover letter and status of application id.
func (s *Store) UpdateApplication(ctx context.Context, id uint, fields ApplicationFields) (*database.Application, error) {
	fields = fields.normalized()
	if err := checkFields(entityApplication, fields); err != nil {
		return nil, s.fail(ctx, entityApplication, err)
	}

	var application database.Application
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&application, id).Error; err != nil {
			return err
		}
		updates := map[string]any{
			"cover_letter": fields.CoverLetter,
			"status":       fields.Status,
			"updated_at":   s.touch(application.UpdatedAt),
		}
		if err := tx.Model(&application).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&application, id).Error
	})
	if err != nil {
		return nil, s.fail(ctx, entityApplication, err)
	}
	return &application, nil
}

// DeleteApplication removes application id. Nothing depends on it.
func (s *Store) DeleteApplication(ctx context.Context, id uint) (*database.Application, error) {
	var application database.Application
	deletion := Deletion{Entity: entityApplication, ID: id}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&application, id).Error; err != nil {
			return err
		}
		return tx.Delete(&database.Application{}, id).Error
	})
	if err != nil {
		return nil, s.fail(ctx, entityApplication, err)
	}

	deletion.Record = application
	s.finishDeletion(ctx, deletion)
	return &application, nil
}
