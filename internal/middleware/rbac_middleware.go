package middleware

import (
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by rbac.Service.
type RBACService interface {
	Enforce(role, resource, action string) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetActorID(c); !ok {
			response.FromError(c, apperror.ErrUnauthorized)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(GetActorRole(c), resource, action)
		if err != nil {
			response.FromError(c, apperror.ErrInternal)
			c.Abort()
			return
		}

		if !allowed {
			response.FromError(c, apperror.ErrForbidden.WithDetails(gin.H{"required": resource + ":" + action}))
			c.Abort()
			return
		}
		c.Next()
	}
}
