package app

import (
	"context"
	"time"

	"go-leave/internal/approval"
	"go-leave/internal/auth"
	"go-leave/internal/employee"
	"go-leave/internal/leave"
	"go-leave/internal/seed"
	"go-leave/internal/shared/audit"
	"go-leave/internal/shared/counter"
	"go-leave/internal/shared/txmanager"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Core is the leave management API consumed by presentation layers: the
// HTTP handlers, or any embedding program.
type Core struct {
	auth      auth.Service
	employees employee.Service
	leaves    leave.Service
	approvals approval.Service
}

func NewCore(authSvc auth.Service, employees employee.Service, leaves leave.Service, approvals approval.Service) *Core {
	return &Core{auth: authSvc, employees: employees, leaves: leaves, approvals: approvals}
}

func (c *Core) Authenticate(ctx context.Context, email, password string) (employee.Employee, error) {
	return c.auth.Authenticate(ctx, email, password)
}

func (c *Core) SubmitLeave(
	ctx context.Context,
	employeeID int64,
	leaveType leave.LeaveType,
	startDate, endDate time.Time,
	reason string,
) (leave.LeaveResponse, error) {
	return c.leaves.Submit(ctx, employeeID, leave.SubmitLeaveRequest{
		LeaveType: string(leaveType),
		StartDate: startDate.Format(leave.DateLayout),
		EndDate:   endDate.Format(leave.DateLayout),
		Reason:    reason,
	})
}

func (c *Core) DecideLeave(ctx context.Context, requestID int64, outcome leave.Status, deciderID int64) (leave.LeaveResponse, error) {
	return c.approvals.Decide(ctx, requestID, outcome, deciderID)
}

func (c *Core) GetBalance(ctx context.Context, employeeID int64) (employee.BalanceResponse, error) {
	return c.employees.GetBalance(ctx, employeeID)
}

func (c *Core) ListMyRequests(ctx context.Context, employeeID int64) ([]leave.LeaveResponse, error) {
	return c.leaves.ListByEmployee(ctx, employeeID, leave.ListFilter{})
}

func (c *Core) ListAllRequests(ctx context.Context) ([]leave.LeaveListItemResponse, error) {
	return c.leaves.ListAll(ctx, leave.ListFilter{})
}

// NewMemoryCore builds a process-local core over in-memory storage and loads
// fixture into it. A nil fixture leaves the directory empty.
func NewMemoryCore(ctx context.Context, fixture *seed.Fixture, logger ...*zap.Logger) (*Core, error) {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}

	st := newMemoryStorage()
	hasher := auth.SHA256Hasher{}
	if fixture != nil {
		if err := seed.Apply(ctx, fixture, st.seedDeps(hasher, l)); err != nil {
			return nil, err
		}
	}

	tokens := auth.TokenConfig{Secret: []byte(uuid.NewString())}
	svcs := newServices(st, hasher, tokens, nil, audit.NewZapLogger(l), l)
	return svcs.core(), nil
}

// storage is one backend's set of repositories.
type storage struct {
	tx        txmanager.Manager
	employees employee.Repository
	leaves    leave.Repository
	counter   counter.Repository
}

func newMemoryStorage() storage {
	return storage{
		tx:        txmanager.NewMemoryManager(),
		employees: employee.NewMemoryRepository(),
		leaves:    leave.NewMemoryRepository(),
		counter:   counter.NewMemoryRepository(),
	}
}

func (s storage) seedDeps(hasher auth.Hasher, logger *zap.Logger) seed.Deps {
	return seed.Deps{
		Tx:        s.tx,
		Employees: s.employees,
		Leaves:    s.leaves,
		Counter:   s.counter,
		Hasher:    hasher,
		Logger:    logger,
	}
}
