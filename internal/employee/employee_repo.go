package employee

import (
	"context"
	"time"

	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/shared/txmanager"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock

// Repository is the employee directory. Implementations return copies, so
// callers can never mutate stored records through a returned value, and report
// missing rows as employeeerrors.ErrEmployeeNotFound.
type Repository interface {
	Create(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, id int64) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindAll(ctx context.Context) ([]Employee, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	// AddUsedLeave atomically increments used leave days. Only the approval
	// engine calls it.
	AddUsedLeave(ctx context.Context, id int64, days int) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return mapRepositoryError(txmanager.Conn(ctx, r.db).Create(e).Error)
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Employee, error) {
	var e Employee
	err := txmanager.Conn(ctx, r.db).First(&e, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &e, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var e Employee
	err := txmanager.Conn(ctx, r.db).Where("email = ?", email).First(&e).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &e, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var emps []Employee
	err := txmanager.Conn(ctx, r.db).Order("id ASC").Find(&emps).Error
	return emps, mapRepositoryError(err)
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var emps []Employee
	err := txmanager.Conn(ctx, r.db).
		Select("id", "name", "department").
		Order("id ASC").
		Find(&emps).Error
	return emps, mapRepositoryError(err)
}

func (r *repository) AddUsedLeave(ctx context.Context, id int64, days int) error {
	if days <= 0 {
		return employeeerrors.ErrInvalidLeaveDays
	}
	res := txmanager.Conn(ctx, r.db).
		Model(&Employee{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"used_leave_days": gorm.Expr("used_leave_days + ?", days),
			"updated_at":      time.Now().UTC(),
		})
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return employeeerrors.ErrEmployeeNotFound
	}
	return nil
}
