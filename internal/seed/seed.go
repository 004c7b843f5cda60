// Package seed loads a small demo data set through the store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"workly/internal/database"
	"workly/internal/store"
)

const (
	EmployerEmail  = "john.doe@example.com"
	ApplicantEmail = "steve.jobs@example.com"
	JobTitle       = "Software Engineer"
)

// Result holds the ids of the seeded rows.
type Result struct {
	EmployerID    uint
	JobID         uint
	ApplicantID   uint
	ResumeID      uint
	ApplicationID uint
}

// Run creates whatever part of the demo data is missing. Running it twice
// leaves the data unchanged.
func Run(ctx context.Context, st *store.Store, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var res Result
	phone := "1234567890"

	employer, err := st.GetEmployerByEmail(ctx, EmployerEmail)
	if errors.Is(err, store.ErrNotFound) {
		employer, err = st.CreateEmployer(ctx, store.EmployerFields{Name: "John Doe", Email: EmployerEmail, Phone: &phone})
		logCreated(logger, err, "employer")
	}
	if err != nil {
		return res, fmt.Errorf("seed employer: %w", err)
	}
	res.EmployerID = employer.ID

	jobs, err := st.ListJobs(ctx, store.JobFilter{EmployerID: employer.ID, Title: JobTitle}, store.Page{Limit: 1})
	if err != nil {
		return res, fmt.Errorf("seed job: %w", err)
	}
	if len(jobs) > 0 {
		res.JobID = jobs[0].ID
	} else {
		job, err := st.CreateJob(ctx, employer.ID, store.JobFields{
			Title:       JobTitle,
			Description: "A software engineer",
			Location:    "San Francisco",
			Salary:      100000,
			Status:      database.JobStatusOpen,
		})
		logCreated(logger, err, "job")
		if err != nil {
			return res, fmt.Errorf("seed job: %w", err)
		}
		res.JobID = job.ID
	}

	applicant, err := st.GetApplicantByEmail(ctx, ApplicantEmail)
	if errors.Is(err, store.ErrNotFound) {
		applicant, err = st.CreateApplicant(ctx, store.ApplicantFields{Name: "Steve Jobs", Email: ApplicantEmail, Phone: &phone})
		logCreated(logger, err, "applicant")
	}
	if err != nil {
		return res, fmt.Errorf("seed applicant: %w", err)
	}
	res.ApplicantID = applicant.ID

	resumes, err := st.ListResumes(ctx, store.ResumeFilter{ApplicantID: applicant.ID}, store.Page{Limit: 1})
	if err != nil {
		return res, fmt.Errorf("seed resume: %w", err)
	}
	if len(resumes) > 0 {
		res.ResumeID = resumes[0].ID
	} else {
		resume, err := st.CreateResume(ctx, applicant.ID, store.ResumeFields{Resume: "This is my resume"})
		logCreated(logger, err, "resume")
		if err != nil {
			return res, fmt.Errorf("seed resume: %w", err)
		}
		res.ResumeID = resume.ID
	}

	applications, err := st.ListApplications(ctx, store.ApplicationFilter{JobID: res.JobID, ResumeID: res.ResumeID}, store.Page{Limit: 1})
	if err != nil {
		return res, fmt.Errorf("seed application: %w", err)
	}
	if len(applications) > 0 {
		res.ApplicationID = applications[0].ID
		return res, nil
	}
	application, err := st.CreateApplication(ctx, res.JobID, res.ResumeID, store.ApplicationFields{
		CoverLetter: "This is my cover letter",
		Status:      database.ApplicationStatusPending,
	})
	logCreated(logger, err, "application")
	if err != nil {
		return res, fmt.Errorf("seed application: %w", err)
	}
	res.ApplicationID = application.ID
	return res, nil
}

func logCreated(logger *slog.Logger, err error, entity string) {
	if err == nil {
		logger.Info("seeded", slog.String("entity", entity))
	}
}
