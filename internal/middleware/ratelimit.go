package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// BookingRateLimit is a fixed-window per-user limiter backed by Redis,
// applied to booking creation only. Redis being down fails open: rate
// limiting is protection, not a correctness requirement.
func BookingRateLimit(rdb *redis.Client, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		userID := c.MustGet(ContextUserID).(uint)
		windowStart := time.Now().Truncate(window)
		key := fmt.Sprintf("rl:booking:%d:%d", userID, windowStart.Unix())

		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(c.Request.Context(), key, window)
		}

		if count > int64(limit) {
			retryAfter := time.Until(windowStart.Add(window))
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error_code": "rate_limited",
				"message":    "too many booking attempts, slow down",
			})
			return
		}

		c.Next()
	}
}
