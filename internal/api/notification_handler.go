package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workly/internal/store"
)

// NotificationHandler serves the read-only /v1/notifications. Notifications
// are only ever created by the store when a job is posted.
type NotificationHandler struct {
	store *store.Store
}

func NewNotificationHandler(st *store.Store) *NotificationHandler {
	return &NotificationHandler{store: st}
}

type listNotificationsQuery struct {
	pageQuery
	JobID uint `form:"job_id"`
}

func (h *NotificationHandler) List(c *gin.Context) {
	var q listNotificationsQuery
	if !bindQuery(c, &q) {
		return
	}
	notifications, err := h.store.ListNotifications(c.Request.Context(), store.NotificationFilter{JobID: q.JobID}, q.page())
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	notification, err := h.store.GetNotification(c.Request.Context(), id)
	if err != nil {
		StoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}
