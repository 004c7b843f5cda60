package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workly/internal/store"
)

// ResumeHandler serves /v1/resumes.
type ResumeHandler struct {
	store *store.Store
}

func NewResumeHandler(st *store.Store) *ResumeHandler {
	return &ResumeHandler{store: st}
}

type createResumeRequest struct {
	ApplicantID uint `json:"applicant_id" binding:"required"`
	store.ResumeFields
}

type listResumesQuery struct {
	pageQuery
	ApplicantID uint `form:"applicant_id"`
}

func (h *ResumeHandler) Create(c *gin.Context) {
	var req createResumeRequest
	if !bindJSON(c, &req) {
		return
	}
	resume, err := h.store.CreateResume(c.Request.Context(), req.ApplicantID, req.ResumeFields)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resume)
}

func (h *ResumeHandler) List(c *gin.Context) {
	var q listResumesQuery
	if !bindQuery(c, &q) {
		return
	}
	resumes, err := h.store.ListResumes(c.Request.Context(), store.ResumeFilter{ApplicantID: q.ApplicantID}, q.page())
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, resumes)
}

func (h *ResumeHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resume, err := h.store.GetResume(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume)
}

func (h *ResumeHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req store.ResumeFields
	if !bindJSON(c, &req) {
		return
	}
	resume, err := h.store.UpdateResume(c.Request.Context(), id, req)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume)
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resume, err := h.store.DeleteResume(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume)
}
