package approval

import (
	"context"
	"errors"
	"time"

	approvalerrors "go-leave/internal/approval/errors"
	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/leave"
	"go-leave/internal/shared/audit"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/shared/txmanager"

	"go.uber.org/zap"
)

//go:generate mockgen -source=approval_service.go -destination=mock/approval_service_mock.go -package=mock
type Service interface {
	// Decide moves a Pending request to outcome. On approval the owner's
	// used leave grows by the request's days in the same unit of work.
	Decide(ctx context.Context, requestID int64, outcome leave.Status, deciderID int64) (leave.LeaveResponse, error)
	Approve(ctx context.Context, requestID, deciderID int64) (leave.LeaveResponse, error)
	Reject(ctx context.Context, requestID, deciderID int64) (leave.LeaveResponse, error)
}

type service struct {
	tx        txmanager.Manager
	leaves    leave.Repository
	employees employee.Repository
	audit     audit.Logger
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	tx txmanager.Manager,
	leaves leave.Repository,
	employees employee.Repository,
	auditLogger audit.Logger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("approval.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.service")
	}
	if auditLogger == nil {
		auditLogger = audit.Nop()
	}
	return &service{
		tx:        tx,
		leaves:    leaves,
		employees: employees,
		audit:     auditLogger,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Approve(ctx context.Context, requestID, deciderID int64) (leave.LeaveResponse, error) {
	return s.Decide(ctx, requestID, leave.StatusApproved, deciderID)
}

func (s *service) Reject(ctx context.Context, requestID, deciderID int64) (leave.LeaveResponse, error) {
	return s.Decide(ctx, requestID, leave.StatusRejected, deciderID)
}

func (s *service) Decide(ctx context.Context, requestID int64, outcome leave.Status, deciderID int64) (leave.LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("decide leave requested",
		zap.Int64("leave_id", requestID),
		zap.String("outcome", string(outcome)),
		zap.Int64("decider_id", deciderID),
	)

	if !outcome.IsTerminal() {
		return leave.LeaveResponse{}, approvalerrors.ErrInvalidOutcome
	}

	var decided *leave.LeaveRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		req, err := s.leaves.FindByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != leave.StatusPending {
			return approvalerrors.ErrAlreadyDecided
		}

		decider, err := s.employees.FindByID(ctx, deciderID)
		if err != nil {
			if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
				return approvalerrors.ErrUnauthorizedDecider
			}
			return err
		}
		if !decider.Role.CanDecide() {
			return approvalerrors.ErrUnauthorizedDecider
		}

		// the owner must exist before the request leaves Pending
		if _, err := s.employees.FindByID(ctx, req.EmployeeID); err != nil {
			return err
		}

		decided, err = s.leaves.MarkDecided(ctx, requestID, outcome, deciderID, s.now().UTC())
		if err != nil {
			return err
		}

		if outcome == leave.StatusApproved {
			return s.employees.AddUsedLeave(ctx, decided.EmployeeID, decided.Days)
		}
		return nil
	})
	if err != nil {
		log.Warn("decide leave failed",
			zap.Int64("leave_id", requestID),
			zap.Int64("decider_id", deciderID),
			zap.Error(err),
		)
		return leave.LeaveResponse{}, err
	}

	log.Info("decide leave success",
		zap.Int64("leave_id", decided.ID),
		zap.Int64("employee_id", decided.EmployeeID),
		zap.String("status", string(decided.Status)),
	)
	s.audit.Log(ctx, audit.Entry{
		Action:  "LEAVE_" + string(decided.Status),
		Message: "leave request decided",
		Meta: map[string]any{
			"leave_id":    decided.ID,
			"employee_id": decided.EmployeeID,
			"decider_id":  deciderID,
			"days":        decided.Days,
		},
	})
	return leave.MapToResponse(*decided), nil
}
