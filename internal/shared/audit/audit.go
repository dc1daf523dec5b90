// Package audit records business events that must be traceable after the
// fact, such as leave decisions and server shutdowns.
package audit

import (
	"context"
	"time"

	"go-leave/internal/shared/contextutil"

	"go.uber.org/zap"
)

type Entry struct {
	Action  string
	Message string
	Meta    map[string]any
}

type Logger interface {
	Log(ctx context.Context, entry Entry)
}

type zapLogger struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewZapLogger writes audit entries as structured log lines under the
// "audit" logger name.
func NewZapLogger(logger ...*zap.Logger) Logger {
	l := zap.L().Named("audit")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit")
	}
	return &zapLogger{logger: l, now: time.Now}
}

func (l *zapLogger) Log(ctx context.Context, entry Entry) {
	l.logger.Info("audit event",
		zap.String("timestamp", l.now().UTC().Format(time.RFC3339)),
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("actor_id", contextutil.GetActorID(ctx)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}

type nopLogger struct{}

// Nop discards every entry.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Log(context.Context, Entry) {}
