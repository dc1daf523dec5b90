package approval

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
	leaves := r.Group("/leaves")
	leaves.Use(authMW)
	leaves.Use(middleware.ContextLogger(logger))
	{
		leaves.POST("/:id/approve",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "leave", "approve"),
			handler.Approve,
		)
		leaves.POST("/:id/reject",
			middleware.RateLimitByUser(2, 10),
			middleware.RBACAuthorize(rbacService, "leave", "approve"),
			handler.Reject,
		)
	}
}
