package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"workly/internal/api/middleware"
	"workly/internal/errcode"
	"workly/internal/metrics"
)

// RateCounter is the subset of the redis client the write limiter needs.
type RateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

func incrWithTTL(ctx context.Context, client RateCounter, key string, ttl time.Duration) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = client.Expire(ctx, key, ttl).Err()
	}
	return count, nil
}

// writeRateLimit allows perMinute mutating requests per client IP in each
// wall-clock minute. Reads pass through. Redis failures let the request through.
func writeRateLimit(client RateCounter, perMinute int, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		key := "rate:writes:" + c.ClientIP() + ":" + now().UTC().Format("200601021504")
		count, err := incrWithTTL(c.Request.Context(), client, key, time.Minute)
		if err != nil {
			middleware.LoggerFromContext(c).Warn("rate limit check failed", "error", err)
			c.Next()
			return
		}
		if count > int64(perMinute) {
			metrics.RateLimited()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{
				Error: "rate limit exceeded",
				Code:  errcode.RateLimited,
			})
			return
		}
		c.Next()
	}
}
