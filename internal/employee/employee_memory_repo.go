package employee

import (
	"context"
	"sort"
	"sync"
	"time"

	employeeerrors "go-leave/internal/employee/errors"
)

type memoryRepository struct {
	mu      sync.RWMutex
	byID    map[int64]*Employee
	byEmail map[string]int64
}

// NewMemoryRepository keeps the directory in process memory.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:    make(map[int64]*Employee),
		byEmail: make(map[string]int64),
	}
}

func (r *memoryRepository) Create(_ context.Context, e *Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[e.ID]; exists {
		return employeeerrors.ErrEmployeeIDTaken
	}
	if _, exists := r.byEmail[e.Email]; exists {
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now

	stored := *e
	r.byID[e.ID] = &stored
	r.byEmail[e.Email] = e.ID
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id int64) (*Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return nil, employeeerrors.ErrEmployeeNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (*Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, employeeerrors.ErrEmployeeNotFound
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *memoryRepository) FindAll(_ context.Context) ([]Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emps := make([]Employee, 0, len(r.byID))
	for _, e := range r.byID {
		emps = append(emps, *e)
	}
	sort.Slice(emps, func(i, j int) bool { return emps[i].ID < emps[j].ID })
	return emps, nil
}

func (r *memoryRepository) FindOptions(ctx context.Context) ([]Employee, error) {
	emps, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]Employee, 0, len(emps))
	for _, e := range emps {
		opts = append(opts, Employee{ID: e.ID, Name: e.Name, Department: e.Department})
	}
	return opts, nil
}

func (r *memoryRepository) AddUsedLeave(_ context.Context, id int64, days int) error {
	if days <= 0 {
		return employeeerrors.ErrInvalidLeaveDays
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return employeeerrors.ErrEmployeeNotFound
	}
	e.UsedLeaveDays += days
	e.UpdatedAt = time.Now().UTC()
	return nil
}
