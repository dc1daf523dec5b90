package contextutil

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// contextKey is private so keys never collide with other packages
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	actorKey     contextKey = "actor_id"
	loggerKey    contextKey = "logger"
	txKey        contextKey = "gorm_tx"
)

// --- Request ID Helpers ---

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// GetKey exposes the raw request id key for middleware that stores it in gin.
func GetKey() string {
	return string(requestIDKey)
}

// --- Actor Helpers ---

// WithActorID records the authenticated employee id for downstream logging.
func WithActorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, actorKey, id)
}

func GetActorID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(actorKey).(string); ok {
		return id
	}
	return ""
}

// --- Logger Helpers ---

// WithLogger stores a request-scoped (already decorated) zap logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request logger, then defaultLogger, then a no-op
// logger. It never returns nil.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}

	if defaultLogger != nil {
		return defaultLogger
	}

	return zap.NewNop()
}

// --- Transaction Helpers ---

// WithTx carries an open gorm transaction down to repositories.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

func GetTx(ctx context.Context) (*gorm.DB, bool) {
	if ctx == nil {
		return nil, false
	}
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	return tx, ok && tx != nil
}
