package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-leave/internal/shared/audit"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func NewHTTPServer(router *gin.Engine, cfg ServerConfig) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// StartHTTPServer serves router until SIGINT or SIGTERM, then shuts down
// gracefully. It returns the listener error if the server fails to start.
func StartHTTPServer(
	router *gin.Engine,
	cfg ServerConfig,
	auditLogger audit.Logger,
	logger *zap.Logger,
) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return Serve(ctx, NewHTTPServer(router, cfg), auditLogger, logger)
}

// Serve runs server until ctx is cancelled.
func Serve(ctx context.Context, server *http.Server, auditLogger audit.Logger, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server running", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			logger.Error("HTTP server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	reason := "context cancelled"
	if cause := context.Cause(ctx); cause != nil {
		reason = cause.Error()
	}
	logger.Info("shutdown signal received", zap.String("reason", reason))

	auditLogger.Log(context.Background(), audit.Entry{
		Action:  "SERVER_SHUTDOWN",
		Message: "Server is shutting down",
		Meta:    map[string]any{"reason": reason, "pid": os.Getpid()},
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
		return err
	}
	logger.Info("server exited gracefully")
	return nil
}
