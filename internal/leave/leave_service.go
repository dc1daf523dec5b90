package leave

import (
	"context"
	"strings"
	"time"

	"go-leave/internal/employee"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/shared/counter"
	"go-leave/internal/shared/txmanager"

	"go.uber.org/zap"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID int64, req SubmitLeaveRequest) (LeaveResponse, error)
	GetByID(ctx context.Context, id int64) (LeaveResponse, error)
	ListByEmployee(ctx context.Context, employeeID int64, filter ListFilter) ([]LeaveResponse, error)
	ListAll(ctx context.Context, filter ListFilter) ([]LeaveListItemResponse, error)
	CountPending(ctx context.Context) (int64, error)
}

type service struct {
	tx        txmanager.Manager
	repo      Repository
	employees employee.Repository
	counter   counter.Repository
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	tx txmanager.Manager,
	repo Repository,
	employees employee.Repository,
	counterRepo counter.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		tx:        tx,
		repo:      repo,
		employees: employees,
		counter:   counterRepo,
		now:       time.Now,
		logger:    l,
	}
}

// Submit validates and records a new Pending request. Balances are checked
// but never changed here.
func (s *service) Submit(ctx context.Context, employeeID int64, req SubmitLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("submit leave requested",
		zap.Int64("employee_id", employeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	leaveType, err := ParseLeaveType(req.LeaveType)
	if err != nil {
		return LeaveResponse{}, err
	}
	startDate, err := ParseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := ParseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrMissingReason
	}

	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		log.Warn("submit leave employee lookup failed", zap.Int64("employee_id", employeeID), zap.Error(err))
		return LeaveResponse{}, err
	}

	days := CountDays(startDate, endDate)
	if available := emp.Available(); days > available {
		log.Info("submit leave insufficient balance",
			zap.Int64("employee_id", employeeID),
			zap.Int("available", available),
			zap.Int("requested", days),
		)
		return LeaveResponse{}, &leaveerrors.InsufficientBalanceError{Available: available, Requested: days}
	}

	l := &LeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		Days:       days,
		Reason:     reason,
		Status:     StatusPending,
		AppliedAt:  s.now().UTC(),
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		id, err := s.counter.GetNextValue(ctx, counter.LeaveRequestCounter)
		if err != nil {
			return err
		}
		l.ID = id
		return s.repo.Create(ctx, l)
	})
	if err != nil {
		log.Error("submit leave persist failed", zap.Int64("employee_id", employeeID), zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("submit leave success",
		zap.Int64("leave_id", l.ID),
		zap.Int64("employee_id", employeeID),
		zap.Int("days", days),
	)
	return MapToResponse(*l), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	return MapToResponse(*l), nil
}

func (s *service) ListByEmployee(ctx context.Context, employeeID int64, filter ListFilter) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByEmployee(ctx, employeeID, filter)
	if err != nil {
		s.logger.Error("list employee leaves failed", zap.Int64("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ListAll(ctx context.Context, filter ListFilter) ([]LeaveListItemResponse, error) {
	leaves, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list all leaves failed", zap.Error(err))
		return nil, err
	}

	emps, err := s.employees.FindOptions(ctx)
	if err != nil {
		s.logger.Error("list all leaves directory lookup failed", zap.Error(err))
		return nil, err
	}
	byID := make(map[int64]employee.Employee, len(emps))
	for _, e := range emps {
		byID[e.ID] = e
	}

	items := make([]LeaveListItem, len(leaves))
	for i, l := range leaves {
		e := byID[l.EmployeeID]
		items[i] = LeaveListItem{LeaveRequest: l, EmployeeName: e.Name, Department: e.Department}
	}
	return mapToListItems(items), nil
}

func (s *service) CountPending(ctx context.Context) (int64, error) {
	return s.repo.CountByStatus(ctx, StatusPending)
}
