package database

import (
	"time"

	"gorm.io/datatypes"
)

// JobStatus is the lifecycle state of a job posting.
type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

// Valid reports whether s is one of the declared job statuses.
func (s JobStatus) Valid() bool {
	return s == JobStatusOpen || s == JobStatusClosed
}

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Valid reports whether s is one of the declared application statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// Base holds the identity and timestamps shared by every table.
// Timestamps are stamped by the store, not by gorm callbacks.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}

// Employer posts jobs. Deleting it removes its jobs.
type Employer struct {
	Base
	Name  string  `gorm:"size:30;not null" json:"name"`
	Email string  `gorm:"size:50;not null;uniqueIndex" json:"email"`
	Phone *string `gorm:"size:20" json:"phone"`

	Jobs []Job `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Job is a posting owned by exactly one employer.
type Job struct {
	Base
	Title       string    `gorm:"size:50;not null" json:"title"`
	Description string    `gorm:"size:500;not null" json:"description"`
	Location    string    `gorm:"size:100;not null;index" json:"location"`
	Salary      int       `gorm:"not null;check:chk_jobs_salary_positive,salary > 0" json:"salary"`
	Status      JobStatus `gorm:"size:16;not null;check:chk_jobs_status,status IN ('open','closed')" json:"status"`
	EmployerID  uint      `gorm:"not null;index" json:"employer_id"`

	Applications  []Application  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Notifications []Notification `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Applicant submits resumes. Deleting it removes its resumes.
type Applicant struct {
	Base
	Name  string  `gorm:"size:30;not null" json:"name"`
	Email string  `gorm:"size:50;not null;uniqueIndex" json:"email"`
	Phone *string `gorm:"size:20" json:"phone"`

	Resumes []Resume `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Resume is a free-text resume body owned by one applicant.
type Resume struct {
	Base
	Resume      string `gorm:"size:1000;not null" json:"resume"`
	ApplicantID uint   `gorm:"not null;index" json:"applicant_id"`

	Applications []Application `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Application links a resume to a job. The applicant is reached through the resume.
type Application struct {
	Base
	CoverLetter string            `gorm:"size:1000;not null" json:"cover_letter"`
	Status      ApplicationStatus `gorm:"size:16;not null;check:chk_applications_status,status IN ('pending','accepted','rejected')" json:"status"`
	JobID       uint              `gorm:"not null;index" json:"job_id"`
	ResumeID    uint              `gorm:"not null;index" json:"resume_id"`
}

// Notification records that a job was posted. Only the store creates it.
type Notification struct {
	Base
	Message string         `gorm:"size:1000;not null" json:"message"`
	Data    datatypes.JSON `json:"data"`
	JobID   uint           `gorm:"not null;index" json:"job_id"`
}

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&Employer{},
		&Job{},
		&Applicant{},
		&Resume{},
		&Application{},
		&Notification{},
	}
}
