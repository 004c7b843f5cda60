package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"workly/internal/logctx"
)

const (
	correlationIDKey    = "correlationID"
	correlationIDHeader = "X-Correlation-ID"
)

// CorrelationIDMiddleware makes sure every request carries a correlation id,
// both on the gin context and on the request's context.Context.
func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(correlationIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(correlationIDKey, id)
		c.Header(correlationIDHeader, id)
		c.Request = c.Request.WithContext(logctx.WithCorrelationID(c.Request.Context(), id))

		c.Next()
	}
}

// GetCorrelationID returns the request's correlation id.
func GetCorrelationID(c *gin.Context) string {
	if value, ok := c.Get(correlationIDKey); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
