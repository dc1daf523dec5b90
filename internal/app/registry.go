package app

import (
	"go-leave/internal/approval"
	"go-leave/internal/auth"
	"go-leave/internal/employee"
	"go-leave/internal/leave"
	"go-leave/internal/middleware"
	"go-leave/internal/shared/audit"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type services struct {
	auth      auth.Service
	employees employee.Service
	leaves    leave.Service
	approvals approval.Service
}

func newServices(
	st storage,
	hasher auth.Hasher,
	tokens auth.TokenConfig,
	rdb *redis.Client,
	auditLogger audit.Logger,
	logger *zap.Logger,
) services {
	return services{
		auth:      auth.NewService(st.employees, hasher, tokens, logger),
		employees: employee.NewService(st.employees, rdb, logger),
		leaves:    leave.NewService(st.tx, st.leaves, st.employees, st.counter, logger),
		approvals: approval.NewService(st.tx, st.leaves, st.employees, auditLogger, logger),
	}
}

func (s services) core() *Core {
	return NewCore(s.auth, s.employees, s.leaves, s.approvals)
}

func registerModules(
	router *gin.Engine,
	svcs services,
	jwtSecret []byte,
	secureCookie bool,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	authMW := middleware.AuthMiddleware(jwtSecret)

	// --- Handlers ---
	authHandler := auth.NewHandler(svcs.auth, secureCookie, logger)
	employeeHandler := employee.NewHandler(svcs.employees, logger)
	leaveHandler := leave.NewHandler(svcs.leaves, logger)
	approvalHandler := approval.NewHandler(svcs.approvals, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authMW)
		employee.RegisterRoutes(api, employeeHandler, authMW, rbacService, logger)
		leave.RegisterRoutes(api, leaveHandler, authMW, rbacService, rdb, logger)
		approval.RegisterRoutes(api, approvalHandler, authMW, rbacService, logger)
	}
}
