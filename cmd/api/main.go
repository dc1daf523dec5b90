package main

import (
	"context"

	"go-leave/internal/app"
	"go-leave/internal/bootstrap"
	"go-leave/internal/config"
	"go-leave/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// build dependency + routes
	a, err := app.BuildApp(context.Background(), r, cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer a.Close()

	err = bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         cfg.Port,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		a.Audit,
		logger,
	)
	if err != nil {
		logger.Error("http server stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
