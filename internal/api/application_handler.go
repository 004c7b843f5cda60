package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workly/internal/database"
	"workly/internal/store"
)

// ApplicationHandler serves /v1/applications.
type ApplicationHandler struct {
	store *store.Store
}

func NewApplicationHandler(st *store.Store) *ApplicationHandler {
	return &ApplicationHandler{store: st}
}

type createApplicationRequest struct {
	JobID    uint `json:"job_id" binding:"required"`
	ResumeID uint `json:"resume_id" binding:"required"`
	store.ApplicationFields
}

type listApplicationsQuery struct {
	pageQuery
	JobID       uint   `form:"job_id"`
	ResumeID    uint   `form:"resume_id"`
	ApplicantID uint   `form:"applicant_id"`
	Status      string `form:"status" binding:"omitempty,oneof=pending accepted rejected"`
}

func (h *ApplicationHandler) Create(c *gin.Context) {
	var req createApplicationRequest
	if !bindJSON(c, &req) {
		return
	}
	application, err := h.store.CreateApplication(c.Request.Context(), req.JobID, req.ResumeID, req.ApplicationFields)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

func (h *ApplicationHandler) List(c *gin.Context) {
	var q listApplicationsQuery
	if !bindQuery(c, &q) {
		return
	}
	filter := store.ApplicationFilter{
		JobID:       q.JobID,
		ResumeID:    q.ResumeID,
		ApplicantID: q.ApplicantID,
		Status:      database.ApplicationStatus(q.Status),
	}
	applications, err := h.store.ListApplications(c.Request.Context(), filter, q.page())
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	application, err := h.store.GetApplication(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func (h *ApplicationHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req store.ApplicationFields
	if !bindJSON(c, &req) {
		return
	}
	application, err := h.store.UpdateApplication(c.Request.Context(), id, req)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	application, err := h.store.DeleteApplication(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}
