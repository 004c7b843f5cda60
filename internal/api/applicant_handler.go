package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workly/internal/store"
)

// ApplicantHandler serves /v1/applicants.
type ApplicantHandler struct {
	store *store.Store
}

func NewApplicantHandler(st *store.Store) *ApplicantHandler {
	return &ApplicantHandler{store: st}
}

func (h *ApplicantHandler) Create(c *gin.Context) {
	var req store.ApplicantFields
	if !bindJSON(c, &req) {
		return
	}
	applicant, err := h.store.CreateApplicant(c.Request.Context(), req)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, applicant)
}

func (h *ApplicantHandler) List(c *gin.Context) {
	var q pageQuery
	if !bindQuery(c, &q) {
		return
	}
	applicants, err := h.store.ListApplicants(c.Request.Context(), q.page())
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, applicants)
}

func (h *ApplicantHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	applicant, err := h.store.GetApplicant(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, applicant)
}

func (h *ApplicantHandler) GetByEmail(c *gin.Context) {
	var q emailQuery
	if !bindQuery(c, &q) {
		return
	}
	applicant, err := h.store.GetApplicantByEmail(c.Request.Context(), q.Email)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, applicant)
}

func (h *ApplicantHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req store.ApplicantFields
	if !bindJSON(c, &req) {
		return
	}
	applicant, err := h.store.UpdateApplicant(c.Request.Context(), id, req)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, applicant)
}

// Delete removes the applicant with its resumes and echoes the deleted row.
func (h *ApplicantHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	applicant, err := h.store.DeleteApplicant(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, applicant)
}
