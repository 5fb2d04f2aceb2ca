package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"anoa.com/wodtracker/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"github.com/sirupsen/logrus"
)

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit limits an action per authenticated user. Gemini calls are the expensive
// part of the API, so the AI endpoints are the ones wrapped with it.
// A nil limiter disables limiting.
func RateLimit(limiter RequestRateLimiter, action string, allowedPerMin int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		userID, err := response.GetUserID(c)
		if err != nil {
			response.ResponseError(c, err)
			c.Abort()
			return
		}

		key := fmt.Sprintf("rate_limit:user:%s:%s", userID, action)
		res, err := limiter.Allow(c.Request.Context(), key, redis_rate.PerMinute(allowedPerMin))
		if err != nil {
			// Redis trouble should not take the coach down with it.
			logrus.Warnf("⚠️ Rate limiter unavailable for %s: %v", action, err)
			c.Next()
			return
		}

		if res.Allowed > 0 {
			c.Next()
			return
		}

		retry := int(math.Ceil(res.RetryAfter.Seconds()))
		if retry < 1 {
			retry = 1
		}
		c.Header("Retry-After", strconv.Itoa(retry))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":       "too many requests, please wait a moment",
			"retry_after": retry,
		})
	}
}
