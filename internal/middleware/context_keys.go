package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	ContextEmployeeID = "employee_id"
	ContextRole       = "role"
)

// GetActorID returns the authenticated employee id set by AuthMiddleware.
func GetActorID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextEmployeeID)
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case int64:
		return id, id > 0
	case string:
		parsed, err := strconv.ParseInt(id, 10, 64)
		return parsed, err == nil && parsed > 0
	default:
		return 0, false
	}
}

func GetActorRole(c *gin.Context) string {
	return c.GetString(ContextRole)
}
