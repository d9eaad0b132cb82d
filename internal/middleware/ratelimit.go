package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/bookmylook-auth/internal/cache"
	"github.com/BruksfildServices01/bookmylook-auth/internal/httpresp"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (cache.Decision, error)
}

const limiterTimeout = 500 * time.Millisecond

// RateLimit keys on client IP. Limiter errors let the request through.
func RateLimit(l Limiter, limit int, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), limiterTimeout)
		d, err := l.Allow(ctx, "ip:"+c.ClientIP())
		cancel()

		if err != nil {
			log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		if !d.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(d.RetryAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httpresp.Envelope{
				Success: false,
				Error:   "Too many requests. Try again in " + d.RetryAfter.String(),
			})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Next()
	}
}
