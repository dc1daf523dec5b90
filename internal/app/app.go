package app

import (
	"context"
	"fmt"
	"net/http"

	"go-leave/internal/auth"
	"go-leave/internal/config"
	"go-leave/internal/employee"
	"go-leave/internal/leave"
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"
	"go-leave/internal/seed"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/audit"
	"go-leave/internal/shared/connection"
	"go-leave/internal/shared/counter"
	"go-leave/internal/shared/response"
	"go-leave/internal/shared/txmanager"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is a wired instance of the service. Close releases the storage and
// cache connections it opened.
type App struct {
	Core  *Core
	Audit audit.Logger
	db    *gorm.DB
	rdb   *redis.Client
}

// BuildApp opens the configured storage backend, seeds it and registers
// every route under /api/v1 on router.
func BuildApp(ctx context.Context, router *gin.Engine, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.L()
	}
	a := &App{Audit: audit.NewZapLogger(logger)}

	// 1. Setup Infrastructure
	st, err := a.openStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.RedisAddr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DBMaxRetries)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.rdb = rdb
		logger.Info("redis connection established", zap.String("addr", cfg.RedisAddr))
	}

	hasher, err := auth.NewHasher(cfg.PasswordHasher)
	if err != nil {
		a.Close()
		return nil, err
	}

	// 2. Seed
	if cfg.SeedEnabled {
		fixture, err := seed.Load(cfg.SeedFile)
		if err != nil {
			a.Close()
			return nil, err
		}
		if err := seed.Apply(ctx, fixture, st.seedDeps(hasher, logger)); err != nil {
			a.Close()
			return nil, err
		}
	}

	// 3. RBAC
	enforcer, err := rbac.NewEnforcer(rbac.DefaultPolicy())
	if err != nil {
		a.Close()
		return nil, err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// 4. Services, handlers and routes
	secret := []byte(cfg.JWTSecret)
	svcs := newServices(st, hasher, auth.TokenConfig{Secret: secret, TTL: cfg.AccessTokenTTL}, a.rdb, a.Audit, logger)
	a.Core = svcs.core()
	if cfg.SeedEnabled {
		// a reseeded directory must not be served from a stale options cache
		svcs.employees.InvalidateOptions(ctx)
	}

	router.Use(middleware.RequestID())
	router.GET("/healthz", a.health)
	registerModules(router, svcs, secret, cfg.IsProduction(), rbacService, a.rdb, logger)

	return a, nil
}

func (a *App) openStorage(cfg *config.Config, logger *zap.Logger) (storage, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.StorageDriver {
	case config.DriverMemory:
		logger.Info("using in-memory storage")
		return newMemoryStorage(), nil
	case config.DriverSQLite:
		db, err = connection.OpenSQLite(cfg.SQLiteDSN)
	case config.DriverPostgres:
		db, err = connection.ConnectGORMWithRetry(cfg.Postgres, cfg.DBMaxRetries)
	default:
		return storage{}, fmt.Errorf("app: unknown storage driver %q", cfg.StorageDriver)
	}
	if err != nil {
		return storage{}, err
	}
	a.db = db
	logger.Info("database connection established", zap.String("driver", cfg.StorageDriver))

	if err := db.AutoMigrate(&employee.Employee{}, &leave.LeaveRequest{}, &counter.Sequence{}); err != nil {
		a.Close()
		return storage{}, fmt.Errorf("app: migrate: %w", err)
	}

	return storage{
		tx:        txmanager.NewGormManager(db),
		employees: employee.NewRepository(db),
		leaves:    leave.NewRepository(db),
		counter:   counter.NewRepository(db),
	}, nil
}

func (a *App) health(c *gin.Context) {
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, apperror.CodeServiceUnavailable, "database unavailable", nil)
			return
		}
	}
	if a.rdb != nil {
		if err := a.rdb.Ping(c.Request.Context()).Err(); err != nil {
			response.Error(c, http.StatusServiceUnavailable, apperror.CodeServiceUnavailable, "redis unavailable", nil)
			return
		}
	}
	response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
}

func (a *App) Close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
		a.rdb = nil
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		a.db = nil
	}
}
