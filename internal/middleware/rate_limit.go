package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/auction-house/internal/errors"
	"github.com/yukikurage/auction-house/internal/logger"
)

// Limiter decides whether a request identified by key is within quota.
type Limiter interface {
	Allow(key string) bool
}

// RateLimit rejects requests over quota with 429, keyed by route and client IP.
// A nil limiter disables the check.
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := c.FullPath() + ":" + c.ClientIP()
		if !limiter.Allow(key) {
			logger.Warn("Rate limit exceeded", map[string]any{
				"path":      c.FullPath(),
				"client_ip": c.ClientIP(),
			})
			apierrors.TooManyRequests(c, "")
			return
		}

		c.Next()
	}
}
