package store

import (
	"context"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"workly/internal/database"
	"workly/internal/logctx"
)

// ApplicantFields are the mutable columns of an applicant.
type ApplicantFields struct {
	Name  string  `json:"name" validate:"required,max=30"`
	Email string  `json:"email" validate:"required,max=50,email"`
	Phone *string `json:"phone" validate:"omitempty,max=20"`
}

func (f ApplicantFields) normalized() ApplicantFields {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = trimOptional(f.Phone)
	return f
}

// GetApplicant returns the applicant with id.
func (s *Store) GetApplicant(ctx context.Context, id uint) (*database.Applicant, error) {
	var applicant database.Applicant
	if err := s.db.WithContext(ctx).First(&applicant, id).Error; err != nil {
		return nil, s.fail(ctx, entityApplicant, err)
	}
	return &applicant, nil
}

// GetApplicantByEmail returns the applicant registered with email.
func (s *Store) GetApplicantByEmail(ctx context.Context, email string) (*database.Applicant, error) {
	var applicant database.Applicant
	err := s.db.WithContext(ctx).
		Where("email = ?", strings.TrimSpace(email)).
		First(&applicant).Error
	if err != nil {
		return nil, s.fail(ctx, entityApplicant, err)
	}
	return &applicant, nil
}

// ListApplicants returns applicants in insertion order.
func (s *Store) ListApplicants(ctx context.Context, page Page) ([]database.Applicant, error) {
	applicants := make([]database.Applicant, 0)
	q := s.db.WithContext(ctx).Model(&database.Applicant{}).Order("id ASC")
	if err := page.apply(q).Find(&applicants).Error; err != nil {
		return nil, s.fail(ctx, entityApplicant, err)
	}
	return applicants, nil
}

// CreateApplicant inserts a new applicant. A taken email yields ErrDuplicateKey.
func (s *Store) CreateApplicant(ctx context.Context, fields ApplicantFields) (*database.Applicant, error) {
	fields = fields.normalized()
	if err := checkFields(entityApplicant, fields); err != nil {
		return nil, s.fail(ctx, entityApplicant, err)
	}

	now := s.timestamp()
	applicant := database.Applicant{
		Base:  database.Base{CreatedAt: now, UpdatedAt: now},
		Name:  fields.Name,
		Email: fields.Email,
		Phone: fields.Phone,
	}
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(&applicant).Error
	})
	if err != nil {
		return nil, s.fail(ctx, entityApplicant, err)
	}
	return &applicant, nil
}

// UpdateApplicant replaces name, email and phone of applicant id.
func (s *Store) UpdateApplicant(ctx context.Context, id uint, fields ApplicantFields) (*database.Applicant, error) {
	fields = fields.normalized()
	if err := checkFields(entityApplicant, fields); err != nil {
		return nil, s.fail(ctx, entityApplicant, err)
	}

	var applicant database.Applicant
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&applicant, id).Error; err != nil {
			return err
		}
		updates := map[string]any{
			"name":       fields.Name,
			"email":      fields.Email,
			"phone":      fields.Phone,
			"updated_at": s.touch(applicant.UpdatedAt),
		}
		if err := tx.Model(&applicant).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&applicant, id).Error
	})
	if err != nil {
		return nil, s.fail(ctx, entityApplicant, err)
	}
	return &applicant, nil
}

// DeleteApplicant removes applicant id, its resumes and their applications.
func (s *Store) DeleteApplicant(ctx context.Context, id uint) (*database.Applicant, error) {
	var applicant database.Applicant
	deletion := Deletion{Entity: entityApplicant, ID: id}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&applicant, id).Error; err != nil {
			return err
		}
		c := cascade{tx: tx, deletion: &deletion}
		if err := c.applicantResumes(id); err != nil {
			return err
		}
		return tx.Delete(&database.Applicant{}, id).Error
	})
	if err != nil {
		return nil, s.fail(ctx, entityApplicant, err)
	}

	deletion.Record = applicant
	s.finishDeletion(ctx, deletion)
	logctx.Logger(ctx, s.logger).Info("applicant deleted",
		slog.Uint64("applicant_id", uint64(id)),
		slog.Int("rows", deletion.RowCount()),
	)
	return &applicant, nil
}
