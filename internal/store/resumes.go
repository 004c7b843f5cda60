package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"workly/internal/database"
)

// ResumeFields are the mutable columns of a resume.
type ResumeFields struct {
	Resume string `json:"resume" validate:"required,max=1000"`
}

func (f ResumeFields) normalized() ResumeFields {
	f.Resume = strings.TrimSpace(f.Resume)
	return f
}

// ResumeFilter narrows ListResumes.
type ResumeFilter struct {
	ApplicantID uint
}

// GetResume returns the resume with id.
func (s *Store) GetResume(ctx context.Context, id uint) (*database.Resume, error) {
	var resume database.Resume
	if err := s.db.WithContext(ctx).First(&resume, id).Error; err != nil {
		return nil, s.fail(ctx, entityResume, err)
	}
	return &resume, nil
}

// ListResumes returns resumes in insertion order.
func (s *Store) ListResumes(ctx context.Context, filter ResumeFilter, page Page) ([]database.Resume, error) {
	q := s.db.WithContext(ctx).Model(&database.Resume{})
	if filter.ApplicantID != 0 {
		q = q.Where("applicant_id = ?", filter.ApplicantID)
	}

	resumes := make([]database.Resume, 0)
	if err := page.apply(q.Order("id ASC")).Find(&resumes).Error; err != nil {
		return nil, s.fail(ctx, entityResume, err)
	}
	return resumes, nil
}

// CreateResume stores a resume for applicantID.
func (s *Store) CreateResume(ctx context.Context, applicantID uint, fields ResumeFields) (*database.Resume, error) {
	fields = fields.normalized()
	if err := checkFields(entityResume, fields); err != nil {
		return nil, s.fail(ctx, entityResume, err)
	}

	var resume database.Resume
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var applicant database.Applicant
		if err := forShare(tx).First(&applicant, applicantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return missingParent(entityResume, "applicant_id", applicantID)
			}
			return err
		}

		now := s.timestamp()
		resume = database.Resume{
			Base:        database.Base{CreatedAt: now, UpdatedAt: now},
			Resume:      fields.Resume,
			ApplicantID: applicant.ID,
		}
		return tx.Create(&resume).Error
	})
	if err != nil {
		return nil, s.fail(ctx, entityResume, err)
	}
	return &resume, nil
}

// UpdateResume replaces the body of resume id.
func (s *Store) UpdateResume(ctx context.Context, id uint, fields ResumeFields) (*database.Resume, error) {
	fields = fields.normalized()
	if err := checkFields(entityResume, fields); err != nil {
		return nil, s.fail(ctx, entityResume, err)
	}

	var resume database.Resume
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&resume, id).Error; err != nil {
			return err
		}
		updates := map[string]any{
			"resume":     fields.Resume,
			"updated_at": s.touch(resume.UpdatedAt),
		}
		if err := tx.Model(&resume).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&resume, id).Error
	})
	if err != nil {
		return nil, s.fail(ctx, entityResume, err)
	}
	return &resume, nil
}

// DeleteResume removes resume id and the applications that reference it.
func (s *Store) DeleteResume(ctx context.Context, id uint) (*database.Resume, error) {
	var resume database.Resume
	deletion := Deletion{Entity: entityResume, ID: id}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&resume, id).Error; err != nil {
			return err
		}
		c := cascade{tx: tx, deletion: &deletion}
		if err := c.resumeDependents([]uint{id}); err != nil {
			return err
		}
		return tx.Delete(&database.Resume{}, id).Error
	})
	if err != nil {
		return nil, s.fail(ctx, entityResume, err)
	}

	deletion.Record = resume
	s.finishDeletion(ctx, deletion)
	return &resume, nil
}
