package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"workly/internal/api/middleware"
	"workly/internal/metrics"
)

// NewRouter builds the gin engine with the middleware every route shares and
// the /metrics endpoint.
func NewRouter(logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.CorrelationIDMiddleware(),
		middleware.SlogLoggerMiddleware(logger),
		metrics.GinMiddleware(),
	)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	return router
}
