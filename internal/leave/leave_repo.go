package leave

import (
	"context"
	"errors"
	"strings"
	"time"

	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/shared/txmanager"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock

// Repository is the request ledger's storage. Listings are ordered newest
// applied first, ties broken by id descending.
type Repository interface {
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id int64) (*LeaveRequest, error)
	FindByEmployee(ctx context.Context, employeeID int64, filter ListFilter) ([]LeaveRequest, error)
	FindAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	// MarkDecided moves a Pending request to status in one step. A request
	// that is no longer Pending yields leaveerrors.ErrAlreadyDecided.
	MarkDecided(ctx context.Context, id int64, status Status, deciderID int64, at time.Time) (*LeaveRequest, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return mapRepositoryError(txmanager.Conn(ctx, r.db).Create(l).Error)
}

func (r *repository) FindByID(ctx context.Context, id int64) (*LeaveRequest, error) {
	var l LeaveRequest
	if err := txmanager.Conn(ctx, r.db).First(&l, "id = ?", id).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return &l, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID int64, filter ListFilter) ([]LeaveRequest, error) {
	return r.find(txmanager.Conn(ctx, r.db).Scopes(OwnedBy(employeeID), Filtered(filter)))
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, error) {
	return r.find(txmanager.Conn(ctx, r.db).Scopes(Filtered(filter)))
}

func (r *repository) find(q *gorm.DB) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := q.Order("applied_at DESC").Order("id DESC").Find(&leaves).Error
	return leaves, mapRepositoryError(err)
}

func (r *repository) CountByStatus(ctx context.Context, status Status) (int64, error) {
	var n int64
	err := txmanager.Conn(ctx, r.db).Model(&LeaveRequest{}).Where("status = ?", status).Count(&n).Error
	return n, mapRepositoryError(err)
}

func (r *repository) MarkDecided(ctx context.Context, id int64, status Status, deciderID int64, at time.Time) (*LeaveRequest, error) {
	res := txmanager.Conn(ctx, r.db).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":     status,
			"decided_by": deciderID,
			"decided_at": at,
		})
	if res.Error != nil {
		return nil, mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, leaveerrors.ErrAlreadyDecided
	}
	return r.FindByID(ctx, id)
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return leaveerrors.ErrLeaveIDTaken
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return leaveerrors.ErrLeaveIDTaken
	}
	if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
		return leaveerrors.ErrLeaveIDTaken
	}
	return err
}
