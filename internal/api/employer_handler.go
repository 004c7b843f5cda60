package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workly/internal/store"
)

// EmployerHandler serves /v1/employers.
type EmployerHandler struct {
	store *store.Store
}

func NewEmployerHandler(st *store.Store) *EmployerHandler {
	return &EmployerHandler{store: st}
}

type emailQuery struct {
	Email string `form:"email" binding:"required"`
}

func (h *EmployerHandler) Create(c *gin.Context) {
	var req store.EmployerFields
	if !bindJSON(c, &req) {
		return
	}
	employer, err := h.store.CreateEmployer(c.Request.Context(), req)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, employer)
}

func (h *EmployerHandler) List(c *gin.Context) {
	var q pageQuery
	if !bindQuery(c, &q) {
		return
	}
	employers, err := h.store.ListEmployers(c.Request.Context(), q.page())
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, employers)
}

func (h *EmployerHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	employer, err := h.store.GetEmployer(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, employer)
}

func (h *EmployerHandler) GetByEmail(c *gin.Context) {
	var q emailQuery
	if !bindQuery(c, &q) {
		return
	}
	employer, err := h.store.GetEmployerByEmail(c.Request.Context(), q.Email)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, employer)
}

func (h *EmployerHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req store.EmployerFields
	if !bindJSON(c, &req) {
		return
	}
	employer, err := h.store.UpdateEmployer(c.Request.Context(), id, req)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, employer)
}

// Delete removes the employer with its jobs and echoes the deleted row.
func (h *EmployerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	employer, err := h.store.DeleteEmployer(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, employer)
}
