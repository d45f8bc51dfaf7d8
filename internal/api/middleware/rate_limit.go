package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hinterbergers/mycliniq-sub000/pkg/redis"
	"github.com/hinterbergers/mycliniq-sub000/pkg/response"
)

// RateLimit is a redis fixed-window limiter keyed by client IP and route.
// It fails open: a nil client or a redis error lets the request through.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "too many requests, please slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}
