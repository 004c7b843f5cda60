package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"workly/internal/api/middleware"
	"workly/internal/errcode"
	"workly/internal/store"
)

const healthTimeout = 2 * time.Second

// RouteOptions tunes RegisterRoutes.
type RouteOptions struct {
	// RateCounter backs the per-client write limit. Nil disables it.
	RateCounter RateCounter
	// WritesPerMinute is the per-client write limit. Zero disables it.
	WritesPerMinute int
	// Now picks the rate window; defaults to time.Now.
	Now func() time.Time
}

// RegisterRoutes registers /health and the /v1 entity routes.
func RegisterRoutes(router *gin.Engine, st *store.Store, opts RouteOptions) {
	employers := NewEmployerHandler(st)
	jobs := NewJobHandler(st)
	applicants := NewApplicantHandler(st)
	resumes := NewResumeHandler(st)
	applications := NewApplicationHandler(st)
	notifications := NewNotificationHandler(st)

	router.GET("/health", health(st))

	v1 := router.Group("/v1")
	if opts.RateCounter != nil && opts.WritesPerMinute > 0 {
		now := opts.Now
		if now == nil {
			now = time.Now
		}
		v1.Use(writeRateLimit(opts.RateCounter, opts.WritesPerMinute, now))
	}
	{
		employerGroup := v1.Group("/employers")
		employerGroup.POST("", employers.Create)
		employerGroup.GET("", employers.List)
		employerGroup.GET("/by-email", employers.GetByEmail)
		employerGroup.GET("/:id", employers.Get)
		employerGroup.PUT("/:id", employers.Update)
		employerGroup.DELETE("/:id", employers.Delete)

		jobGroup := v1.Group("/jobs")
		jobGroup.POST("", jobs.Create)
		jobGroup.GET("", jobs.List)
		jobGroup.GET("/:id", jobs.Get)
		jobGroup.PUT("/:id", jobs.Update)
		jobGroup.DELETE("/:id", jobs.Delete)

		applicantGroup := v1.Group("/applicants")
		applicantGroup.POST("", applicants.Create)
		applicantGroup.GET("", applicants.List)
		applicantGroup.GET("/by-email", applicants.GetByEmail)
		applicantGroup.GET("/:id", applicants.Get)
		applicantGroup.PUT("/:id", applicants.Update)
		applicantGroup.DELETE("/:id", applicants.Delete)

		resumeGroup := v1.Group("/resumes")
		resumeGroup.POST("", resumes.Create)
		resumeGroup.GET("", resumes.List)
		resumeGroup.GET("/:id", resumes.Get)
		resumeGroup.PUT("/:id", resumes.Update)
		resumeGroup.DELETE("/:id", resumes.Delete)

		applicationGroup := v1.Group("/applications")
		applicationGroup.POST("", applications.Create)
		applicationGroup.GET("", applications.List)
		applicationGroup.GET("/:id", applications.Get)
		applicationGroup.PUT("/:id", applications.Update)
		applicationGroup.DELETE("/:id", applications.Delete)

		notificationGroup := v1.Group("/notifications")
		notificationGroup.GET("", notifications.List)
		notificationGroup.GET("/:id", notifications.Get)
	}
}

// health pings the database; 503 when it does not answer.
func health(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			middleware.LoggerFromContext(c).Warn("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"code":   errcode.StoreUnavailable,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
