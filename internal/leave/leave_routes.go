package leave

import (
	"go-leave/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authMW gin.HandlerFunc,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	leaves := r.Group("/leaves")
	leaves.Use(authMW)
	leaves.Use(middleware.ContextLogger(logger))
	{
		leaves.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			middleware.Idempotency(rdb, logger),
			handler.Create,
		)
		leaves.GET("/me", middleware.RBACAuthorize(rbacService, "leave", "read_own"), handler.ListMine)
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read_all"), handler.ListAll)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read_own"), handler.GetById)
	}
}
