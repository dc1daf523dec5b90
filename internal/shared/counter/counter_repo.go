package counter

import (
	"context"
	"sync"
	"time"

	"go-leave/internal/shared/txmanager"

	"gorm.io/gorm"
)

const LeaveRequestCounter = "leave_request"

//go:generate mockgen -source=counter_repo.go -destination=mock/counter_repo_mock.go -package=mock
type Repository interface {
	// GetNextValue returns 1, 2, 3, ... per counterType. Values are never reused.
	GetNextValue(ctx context.Context, counterType string) (int64, error)
}

type Sequence struct {
	Name      string `gorm:"type:varchar(64);primaryKey"`
	LastValue int64  `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (Sequence) TableName() string { return "sequences" }

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	var nextValue int64

	// Atomic upsert + increment; works on both postgres and sqlite (>= 3.35).
	err := txmanager.Conn(ctx, r.db).Raw(`
		INSERT INTO sequences (name, last_value, updated_at)
		VALUES (?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE
		SET last_value = sequences.last_value + 1, updated_at = CURRENT_TIMESTAMP
		RETURNING last_value
	`, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}

type memoryRepository struct {
	mu     sync.Mutex
	values map[string]int64
}

func NewMemoryRepository() Repository {
	return &memoryRepository{values: make(map[string]int64)}
}

func (r *memoryRepository) GetNextValue(_ context.Context, counterType string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[counterType]++
	return r.values[counterType], nil
}
