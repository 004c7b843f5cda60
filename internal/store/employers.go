package store

import (
	"context"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"workly/internal/database"
	"workly/internal/logctx"
)

// EmployerFields are the mutable columns of an employer.
type EmployerFields struct {
	Name  string  `json:"name" validate:"required,max=30"`
	Email string  `json:"email" validate:"required,max=50,email"`
	Phone *string `json:"phone" validate:"omitempty,max=20"`
}

func (f EmployerFields) normalized() EmployerFields {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = trimOptional(f.Phone)
	return f
}

// GetEmployer returns the employer with id.
func (s *Store) GetEmployer(ctx context.Context, id uint) (*database.Employer, error) {
	var employer database.Employer
	if err := s.db.WithContext(ctx).First(&employer, id).Error; err != nil {
		return nil, s.fail(ctx, entityEmployer, err)
	}
	return &employer, nil
}

// GetEmployerByEmail returns the employer registered with email.
func (s *Store) GetEmployerByEmail(ctx context.Context, email string) (*database.Employer, error) {
	var employer database.Employer
	err := s.db.WithContext(ctx).
		Where("email = ?", strings.TrimSpace(email)).
		First(&employer).Error
	if err != nil {
		return nil, s.fail(ctx, entityEmployer, err)
	}
	return &employer, nil
}

// ListEmployers returns employers in insertion order.
func (s *Store) ListEmployers(ctx context.Context, page Page) ([]database.Employer, error) {
	employers := make([]database.Employer, 0)
	q := s.db.WithContext(ctx).Model(&database.Employer{}).Order("id ASC")
	if err := page.apply(q).Find(&employers).Error; err != nil {
		return nil, s.fail(ctx, entityEmployer, err)
	}
	return employers, nil
}

// CreateEmployer inserts a new employer. A taken email yields ErrDuplicateKey.
func (s *Store) CreateEmployer(ctx context.Context, fields EmployerFields) (*database.Employer, error) {
	fields = fields.normalized()
	if err := checkFields(entityEmployer, fields); err != nil {
		return nil, s.fail(ctx, entityEmployer, err)
	}

	now := s.timestamp()
	employer := database.Employer{
		Base:  database.Base{CreatedAt: now, UpdatedAt: now},
		Name:  fields.Name,
		Email: fields.Email,
		Phone: fields.Phone,
	}
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(&employer).Error
	})
	if err != nil {
		return nil, s.fail(ctx, entityEmployer, err)
	}
	return &employer, nil
}

// UpdateEmployer replaces name, email and phone of employer id.
func (s *Store) UpdateEmployer(ctx context.Context, id uint, fields EmployerFields) (*database.Employer, error) {
	fields = fields.normalized()
	if err := checkFields(entityEmployer, fields); err != nil {
		return nil, s.fail(ctx, entityEmployer, err)
	}

	var employer database.Employer
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&employer, id).Error; err != nil {
			return err
		}
		updates := map[string]any{
			"name":       fields.Name,
			"email":      fields.Email,
			"phone":      fields.Phone,
			"updated_at": s.touch(employer.UpdatedAt),
		}
		if err := tx.Model(&employer).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&employer, id).Error
	})
	if err != nil {
		return nil, s.fail(ctx, entityEmployer, err)
	}
	return &employer, nil
}

// DeleteEmployer removes employer id together with its jobs and everything
// hanging off them, and returns the removed employer.
func (s *Store) DeleteEmployer(ctx context.Context, id uint) (*database.Employer, error) {
	var employer database.Employer
	deletion := Deletion{Entity: entityEmployer, ID: id}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&employer, id).Error; err != nil {
			return err
		}
		c := cascade{tx: tx, deletion: &deletion}
		if err := c.employerJobs(id); err != nil {
			return err
		}
		return tx.Delete(&database.Employer{}, id).Error
	})
	if err != nil {
		return nil, s.fail(ctx, entityEmployer, err)
	}

	deletion.Record = employer
	s.finishDeletion(ctx, deletion)
	logctx.Logger(ctx, s.logger).Info("employer deleted",
		slog.Uint64("employer_id", uint64(id)),
		slog.Int("rows", deletion.RowCount()),
	)
	return &employer, nil
}
