package ratelimit

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/scamwatch/api-go/internal/pkg/response"
)

// Middleware enforces the limiter per client IP.
func Middleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()

		if !limiter.Allow(key) {
			c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
			c.Header("X-RateLimit-Remaining", "0")
			response.Error(c, 429, "Too many requests, please try again later")
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))
		c.Next()
	}
}
