package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/ratelimit"
)

// Throttle paces requests through a shared limiter. Extraction requests can
// fan out into many coverage lookups, so they queue instead of failing.
func Throttle(requestsPerSecond int) gin.HandlerFunc {
	if requestsPerSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := ratelimit.New(requestsPerSecond)
	return func(c *gin.Context) {
		limiter.Take()
		c.Next()
	}
}
