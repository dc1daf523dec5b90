package middleware

import (
	"go-leave/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}

		c.Set(contextutil.GetKey(), rid)
		c.Request = c.Request.WithContext(contextutil.WithRequestID(c.Request.Context(), rid))

		c.Header("X-Request-ID", rid)
		c.Next()
	}
}
