package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	idempotencyTTL     = 24 * time.Hour
	idempotencyLockTTL = 30 * time.Second
)

type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response of a POST repeated with the same
// Idempotency-Key by the same employee. A nil client disables it.
func Idempotency(rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if rdb == nil || idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		actor := ""
		if id, ok := GetActorID(c); ok {
			actor = strconv.FormatInt(id, 10)
		}
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), actor, idempKey)
		lockKey := cacheKey + ":lock"
		ctx := c.Request.Context()

		if val, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached cachedResponse
			if json.Unmarshal([]byte(val), &cached) == nil {
				c.Header("Idempotent-Replay", "true")
				c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
				c.Abort()
				return
			}
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			logger.Warn("idempotency lock failed, continuing without it", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"ok": false,
				"error": gin.H{
					"code":    "PROCESSING",
					"message": "A request with this Idempotency-Key is still being processed",
				},
			})
			return
		}
		defer rdb.Del(ctx, lockKey)

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		status := rec.Status()
		if status < 200 || status >= 300 {
			return
		}
		payload, err := json.Marshal(cachedResponse{Status: status, Body: rec.buf.Bytes()})
		if err != nil {
			return
		}
		if err := rdb.Set(ctx, cacheKey, payload, idempotencyTTL).Err(); err != nil {
			logger.Warn("idempotency store failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
}
