package employee

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authMW gin.HandlerFunc,
	rbacService middleware.RBACService,
	logger *zap.Logger,
) {
	employees := r.Group("/employees")
	employees.Use(authMW)
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetAll,
		)
		employees.GET("/options",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetOptions,
		)
		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetById,
		)
	}

	me := r.Group("/me")
	me.Use(authMW)
	me.Use(middleware.ContextLogger(logger))
	{
		me.GET("/balance",
			middleware.RBACAuthorize(rbacService, "balance", "read_own"),
			handler.MyBalance,
		)
	}
}
