package txmanager

import (
	"context"
	"sync"

	"go-leave/internal/shared/contextutil"

	"gorm.io/gorm"
)

type Manager interface {
	// WithinTx runs fn as one unit of work. Nested calls join the outer unit.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type gormManager struct {
	db *gorm.DB
}

func NewGormManager(db *gorm.DB) Manager {
	return &gormManager{db: db}
}

func (m *gormManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := contextutil.GetTx(ctx); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(contextutil.WithTx(ctx, tx))
	})
}

type unitKey struct{}

// memoryManager serializes units of work for the in-memory repositories.
// There is no rollback: callers validate before the first write.
type memoryManager struct {
	mu sync.Mutex
}

func NewMemoryManager() Manager {
	return &memoryManager{}
}

func (m *memoryManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(unitKey{}) != nil {
		return fn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(context.WithValue(ctx, unitKey{}, true))
}

// Conn returns the transaction bound to ctx, or db when there is none.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := contextutil.GetTx(ctx); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
