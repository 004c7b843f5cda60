package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"workly/internal/api/middleware"
	"workly/internal/errcode"
	"workly/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
	Field string `json:"field,omitempty"`
}

func Error(c *gin.Context, status, code int, msg string) {
	c.JSON(status, errorResponse{Error: msg, Code: code})
}

func BadRequest(c *gin.Context, msg string) {
	Error(c, http.StatusBadRequest, errcode.InvalidRequest, msg)
}

func Internal(c *gin.Context, msg string) {
	Error(c, http.StatusInternalServerError, errcode.SystemError, msg)
}

// StoreError maps a store failure onto a status code and error body.
func StoreError(c *gin.Context, err error) {
	resp := errorResponse{Error: err.Error()}
	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		resp.Field = storeErr.Field
	}

	var status int
	switch {
	case errors.Is(err, store.ErrNotFound):
		status, resp.Code = http.StatusNotFound, errcode.NotFound
	case errors.Is(err, store.ErrDuplicateKey):
		status, resp.Code = http.StatusConflict, errcode.DuplicateKey
	case errors.Is(err, store.ErrConstraintViolation):
		status, resp.Code = http.StatusBadRequest, errcode.ConstraintViolation
	case errors.Is(err, store.ErrReferentialViolation):
		status, resp.Code = http.StatusUnprocessableEntity, errcode.ReferentialViolation
	default:
		middleware.LoggerFromContext(c).Error("request failed", "error", err)
		Internal(c, "internal error")
		return
	}
	c.JSON(status, resp)
}
