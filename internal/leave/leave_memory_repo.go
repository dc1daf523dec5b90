package leave

import (
	"context"
	"sort"
	"sync"
	"time"

	leaveerrors "go-leave/internal/leave/errors"
)

type memoryRepository struct {
	mu   sync.RWMutex
	byID map[int64]*LeaveRequest
}

// NewMemoryRepository keeps the ledger in process memory. Stored records are
// never handed out; every read returns a copy.
func NewMemoryRepository() Repository {
	return &memoryRepository{byID: make(map[int64]*LeaveRequest)}
}

func (r *memoryRepository) Create(_ context.Context, l *LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[l.ID]; exists {
		return leaveerrors.ErrLeaveIDTaken
	}
	stored := l.clone()
	r.byID[l.ID] = &stored
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id int64) (*LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byID[id]
	if !ok {
		return nil, leaveerrors.ErrLeaveNotFound
	}
	cp := l.clone()
	return &cp, nil
}

func (r *memoryRepository) FindByEmployee(_ context.Context, employeeID int64, filter ListFilter) ([]LeaveRequest, error) {
	return r.collect(func(l LeaveRequest) bool {
		return l.EmployeeID == employeeID && filter.matches(l)
	}), nil
}

func (r *memoryRepository) FindAll(_ context.Context, filter ListFilter) ([]LeaveRequest, error) {
	return r.collect(filter.matches), nil
}

func (r *memoryRepository) collect(keep func(LeaveRequest) bool) []LeaveRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]LeaveRequest, 0, len(r.byID))
	for _, l := range r.byID {
		if keep(*l) {
			out = append(out, l.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AppliedAt.Equal(out[j].AppliedAt) {
			return out[i].AppliedAt.After(out[j].AppliedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *memoryRepository) CountByStatus(_ context.Context, status Status) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, l := range r.byID {
		if l.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *memoryRepository) MarkDecided(_ context.Context, id int64, status Status, deciderID int64, at time.Time) (*LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.byID[id]
	if !ok {
		return nil, leaveerrors.ErrLeaveNotFound
	}
	if l.Status != StatusPending {
		return nil, leaveerrors.ErrAlreadyDecided
	}

	decider := deciderID
	decidedAt := at
	l.Status = status
	l.DecidedBy = &decider
	l.DecidedAt = &decidedAt

	cp := l.clone()
	return &cp, nil
}
