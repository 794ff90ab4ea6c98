package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit is a fixed-window limiter keyed by client IP, used on the auth
// endpoints. With no redis configured it is a no-op.
func RateLimit(rdb *redis.Client, action string, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("rate_limit:ip:%s:%s", c.ClientIP(), action)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// Redis being down must not take the API with it.
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}

		if count > limit {
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "Demasiados intentos, inténtalo de nuevo más tarde"})
			c.Abort()
			return
		}

		c.Next()
	}
}
