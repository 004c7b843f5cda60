package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workly/internal/database"
	"workly/internal/store"
)

// JobHandler serves /v1/jobs.
type JobHandler struct {
	store *store.Store
}

func NewJobHandler(st *store.Store) *JobHandler {
	return &JobHandler{store: st}
}

type createJobRequest struct {
	EmployerID uint `json:"employer_id" binding:"required"`
	store.JobFields
}

type listJobsQuery struct {
	pageQuery
	Title      string `form:"title"`
	Location   string `form:"location"`
	Employer   string `form:"employer"`
	EmployerID uint   `form:"employer_id"`
	Status     string `form:"status" binding:"omitempty,oneof=open closed"`
}

// Create posts a job; the store records its notification in the same transaction.
func (h *JobHandler) Create(c *gin.Context) {
	var req createJobRequest
	if !bindJSON(c, &req) {
		return
	}
	job, err := h.store.CreateJob(c.Request.Context(), req.EmployerID, req.JobFields)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) List(c *gin.Context) {
	var q listJobsQuery
	if !bindQuery(c, &q) {
		return
	}
	filter := store.JobFilter{
		Title:      q.Title,
		Location:   q.Location,
		Employer:   q.Employer,
		EmployerID: q.EmployerID,
		Status:     database.JobStatus(q.Status),
	}
	jobs, err := h.store.ListJobs(c.Request.Context(), filter, q.page())
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	job, err := h.store.GetJob(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req store.JobFields
	if !bindJSON(c, &req) {
		return
	}
	job, err := h.store.UpdateJob(c.Request.Context(), id, req)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	job, err := h.store.DeleteJob(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}
