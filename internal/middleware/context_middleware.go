package middleware

import (
	"strconv"

	"go-leave/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger puts a request-scoped logger into the request context so
// services can log without knowing about gin.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := contextutil.GetRequestID(c.Request.Context())
		if rid == "" {
			rid = c.GetHeader("X-Request-ID")
		}
		if rid == "" {
			rid = uuid.New().String()
			c.Header("X-Request-ID", rid)
		}

		uid := ""
		if id, ok := GetActorID(c); ok {
			uid = strconv.FormatInt(id, 10)
		}

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("employee_id", uid),
		)

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithActorID(ctx, uid)
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
