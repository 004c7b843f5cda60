package store

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"workly/internal/database"
)

// JobPostedMessage is the text of the notification recorded for a new job.
func JobPostedMessage(title, employerName, location string) string {
	return fmt.Sprintf("A new job was posted: %s at %s in %s!", title, employerName, location)
}

// jobPostedData is stored in Notification.Data.
type jobPostedData struct {
	JobID      uint   `json:"job_id"`
	EmployerID uint   `json:"employer_id"`
	Title      string `json:"title"`
	Location   string `json:"location"`
}

// recordJobPosted is the job-posted hook: it inserts the notification for a
// job created in tx, so both commit or roll back together.
func (s *Store) recordJobPosted(tx *gorm.DB, job *database.Job, employer *database.Employer) (*database.Notification, error) {
	data, err := json.Marshal(jobPostedData{
		JobID:      job.ID,
		EmployerID: employer.ID,
		Title:      job.Title,
		Location:   job.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("encode notification data: %w", err)
	}

	now := s.timestamp()
	notification := database.Notification{
		Base:    database.Base{CreatedAt: now, UpdatedAt: now},
		Message: JobPostedMessage(job.Title, employer.Name, job.Location),
		Data:    datatypes.JSON(data),
		JobID:   job.ID,
	}
	if err := tx.Create(&notification).Error; err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	return &notification, nil
}

// NotificationFilter narrows ListNotifications.
type NotificationFilter struct {
	JobID uint
}

// GetNotification returns the notification with id.
func (s *Store) GetNotification(ctx context.Context, id uint) (*database.Notification, error) {
	var notification database.Notification
	if err := s.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		return nil, s.fail(ctx, entityNotification, err)
	}
	return &notification, nil
}

// ListNotifications returns notifications, most recent first.
func (s *Store) ListNotifications(ctx context.Context, filter NotificationFilter, page Page) ([]database.Notification, error) {
	q := s.db.WithContext(ctx).Model(&database.Notification{})
	if filter.JobID != 0 {
		q = q.Where("job_id = ?", filter.JobID)
	}

	notifications := make([]database.Notification, 0)
	q = q.Order("created_at DESC").Order("id DESC")
	if err := page.apply(q).Find(&notifications).Error; err != nil {
		return nil, s.fail(ctx, entityNotification, err)
	}
	return notifications, nil
}
