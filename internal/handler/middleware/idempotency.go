package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// IdempotencyMiddleware rejects replays of mutating requests. The first
// request claims its Idempotency-Key in redis with SetNX; replays within
// the TTL get 409 instead of running the saga twice. A missing key header
// is rejected so clients cannot opt out accidentally.
type IdempotencyMiddleware struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewIdempotencyMiddleware(rdb *redis.Client, ttl time.Duration) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{rdb: rdb, ttl: ttl}
}

func (m *IdempotencyMiddleware) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Idempotency-Key")
		if key == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Idempotency-Key header required",
			})
			c.Abort()
			return
		}

		customerID, _ := GetCustomerID(c)
		redisKey := fmt.Sprintf("idem:%s:%s:%s", c.Request.URL.Path, customerID, key)

		claimed, err := m.rdb.SetNX(c.Request.Context(), redisKey, "1", m.ttl).Result()
		if err != nil {
			// Redis being down should not block bookings; the saga's own
			// conflict detection still prevents double allocation.
			c.Next()
			return
		}
		if !claimed {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Duplicate request for this Idempotency-Key",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
