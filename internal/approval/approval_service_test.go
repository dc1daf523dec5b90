package approval_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-leave/internal/approval"
	approvalerrors "go-leave/internal/approval/errors"
	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	employeeMock "go-leave/internal/employee/mock"
	"go-leave/internal/leave"
	leaveerrors "go-leave/internal/leave/errors"
	leaveMock "go-leave/internal/leave/mock"
	"go-leave/internal/shared/audit"
	"go-leave/internal/shared/testutil"
	"go-leave/internal/shared/txmanager"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingAudit struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (r *recordingAudit) Log(_ context.Context, e audit.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

type backend struct {
	tx        txmanager.Manager
	leaves    leave.Repository
	employees employee.Repository
}

func memoryBackend(t *testing.T) backend {
	return backend{
		tx:        txmanager.NewMemoryManager(),
		leaves:    leave.NewMemoryRepository(),
		employees: employee.NewMemoryRepository(),
	}
}

func sqliteBackend(t *testing.T) backend {
	db := testutil.NewSQLite(t, &employee.Employee{}, &leave.LeaveRequest{})
	return backend{
		tx:        txmanager.NewGormManager(db),
		leaves:    leave.NewRepository(db),
		employees: employee.NewRepository(db),
	}
}

type approvalDeps struct {
	backend
	service approval.Service
	audit   *recordingAudit
}

func setupApprovalTest(t *testing.T, newBackend func(t *testing.T) backend) *approvalDeps {
	t.Helper()
	ctx := context.Background()
	b := newBackend(t)

	for _, e := range []*employee.Employee{
		{ID: 1001, Name: "John Doe", Email: "john.doe@acme.com", Department: "Engineering",
			Role: employee.RoleEmployee, CredentialHash: "x", TotalLeaveAllowance: 20, UsedLeaveDays: 5},
		{ID: 1002, Name: "Jane Smith", Email: "jane.smith@acme.com", Department: "Engineering",
			Role: employee.RoleManager, CredentialHash: "x", TotalLeaveAllowance: 20, UsedLeaveDays: 3},
	} {
		require.NoError(t, b.employees.Create(ctx, e))
	}

	start := time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 11, 17, 0, 0, 0, 0, time.UTC)
	require.NoError(t, b.leaves.Create(ctx, &leave.LeaveRequest{
		ID: 1, EmployeeID: 1001, LeaveType: leave.LeaveTypeSick,
		StartDate: start, EndDate: end, Days: leave.CountDays(start, end),
		Reason: "Medical appointment", Status: leave.StatusPending,
		AppliedAt: time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC),
	}))

	rec := &recordingAudit{}
	return &approvalDeps{
		backend: b,
		service: approval.NewService(b.tx, b.leaves, b.employees, rec),
		audit:   rec,
	}
}

func usedDays(t *testing.T, repo employee.Repository, id int64) int {
	t.Helper()
	e, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	return e.UsedLeaveDays
}

func runDecideSuite(t *testing.T, newBackend func(t *testing.T) backend) {
	ctx := context.Background()

	t.Run("success - approve adds days once", func(t *testing.T) {
		deps := setupApprovalTest(t, newBackend)

		resp, err := deps.service.Approve(ctx, 1, 1002)

		require.NoError(t, err)
		assert.Equal(t, string(leave.StatusApproved), resp.Status)
		require.NotNil(t, resp.DecidedBy)
		assert.Equal(t, int64(1002), *resp.DecidedBy)
		assert.Equal(t, 8, usedDays(t, deps.employees, 1001))

		_, err = deps.service.Approve(ctx, 1, 1002)
		assert.ErrorIs(t, err, approvalerrors.ErrAlreadyDecided)
		assert.Equal(t, 8, usedDays(t, deps.employees, 1001))

		require.Len(t, deps.audit.entries, 1)
		assert.Equal(t, "LEAVE_APPROVED", deps.audit.entries[0].Action)
	})

	t.Run("success - reject leaves balances alone", func(t *testing.T) {
		deps := setupApprovalTest(t, newBackend)

		resp, err := deps.service.Reject(ctx, 1, 1002)

		require.NoError(t, err)
		assert.Equal(t, string(leave.StatusRejected), resp.Status)
		assert.Equal(t, 5, usedDays(t, deps.employees, 1001))
		assert.Equal(t, 3, usedDays(t, deps.employees, 1002))

		_, err = deps.service.Approve(ctx, 1, 1002)
		assert.ErrorIs(t, err, approvalerrors.ErrAlreadyDecided)
		assert.Equal(t, 5, usedDays(t, deps.employees, 1001))
	})

	t.Run("negative non-manager decider", func(t *testing.T) {
		deps := setupApprovalTest(t, newBackend)

		_, err := deps.service.Approve(ctx, 1, 1001)

		assert.ErrorIs(t, err, approvalerrors.ErrUnauthorizedDecider)
		l, err := deps.leaves.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, leave.StatusPending, l.Status)
		assert.Nil(t, l.DecidedBy)
		assert.Equal(t, 5, usedDays(t, deps.employees, 1001))
	})

	t.Run("negative unknown decider", func(t *testing.T) {
		deps := setupApprovalTest(t, newBackend)
		_, err := deps.service.Approve(ctx, 1, 4242)
		assert.ErrorIs(t, err, approvalerrors.ErrUnauthorizedDecider)
	})

	t.Run("negative unknown request", func(t *testing.T) {
		deps := setupApprovalTest(t, newBackend)
		_, err := deps.service.Approve(ctx, 99, 1002)
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("negative decided request wins over unauthorized", func(t *testing.T) {
		deps := setupApprovalTest(t, newBackend)
		_, err := deps.service.Reject(ctx, 1, 1002)
		require.NoError(t, err)

		_, err = deps.service.Approve(ctx, 1, 1001)
		assert.ErrorIs(t, err, approvalerrors.ErrAlreadyDecided)
	})

	t.Run("negative invalid outcome", func(t *testing.T) {
		deps := setupApprovalTest(t, newBackend)
		_, err := deps.service.Decide(ctx, 1, leave.StatusPending, 1002)
		assert.ErrorIs(t, err, approvalerrors.ErrInvalidOutcome)
	})

	t.Run("concurrent approvals apply the balance exactly once", func(t *testing.T) {
		deps := setupApprovalTest(t, newBackend)

		const n = 20
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			wins    int
			decided int
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := deps.service.Approve(ctx, 1, 1002)
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					wins++
				} else if assert.ErrorIs(t, err, approvalerrors.ErrAlreadyDecided) {
					decided++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, wins)
		assert.Equal(t, n-1, decided)
		assert.Equal(t, 8, usedDays(t, deps.employees, 1001))
	})
}

func TestApprovalService_Memory(t *testing.T) {
	runDecideSuite(t, memoryBackend)
}

func TestApprovalService_SQLite(t *testing.T) {
	runDecideSuite(t, sqliteBackend)
}

func TestApprovalService_DecideCallOrder(t *testing.T) {
	ctx := context.Background()
	pending := func() *leave.LeaveRequest {
		return &leave.LeaveRequest{ID: 7, EmployeeID: 1001, Days: 3, Status: leave.StatusPending}
	}
	manager := &employee.Employee{ID: 1002, Role: employee.RoleManager}
	owner := &employee.Employee{ID: 1001, Role: employee.RoleEmployee}

	t.Run("success approve charges the owner after marking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		leaves := leaveMock.NewMockRepository(ctrl)
		employees := employeeMock.NewMockRepository(ctrl)
		decided := &leave.LeaveRequest{ID: 7, EmployeeID: 1001, Days: 3, Status: leave.StatusApproved}

		gomock.InOrder(
			leaves.EXPECT().FindByID(gomock.Any(), int64(7)).Return(pending(), nil),
			employees.EXPECT().FindByID(gomock.Any(), int64(1002)).Return(manager, nil),
			employees.EXPECT().FindByID(gomock.Any(), int64(1001)).Return(owner, nil),
			leaves.EXPECT().MarkDecided(gomock.Any(), int64(7), leave.StatusApproved, int64(1002), gomock.Any()).Return(decided, nil),
			employees.EXPECT().AddUsedLeave(gomock.Any(), int64(1001), 3).Return(nil),
		)

		svc := approval.NewService(txmanager.NewMemoryManager(), leaves, employees, nil)
		resp, err := svc.Approve(ctx, 7, 1002)

		require.NoError(t, err)
		assert.Equal(t, string(leave.StatusApproved), resp.Status)
	})

	t.Run("success reject leaves the balance alone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		leaves := leaveMock.NewMockRepository(ctrl)
		employees := employeeMock.NewMockRepository(ctrl)

		leaves.EXPECT().FindByID(gomock.Any(), int64(7)).Return(pending(), nil)
		employees.EXPECT().FindByID(gomock.Any(), int64(1002)).Return(manager, nil)
		employees.EXPECT().FindByID(gomock.Any(), int64(1001)).Return(owner, nil)
		leaves.EXPECT().MarkDecided(gomock.Any(), int64(7), leave.StatusRejected, int64(1002), gomock.Any()).
			Return(&leave.LeaveRequest{ID: 7, EmployeeID: 1001, Days: 3, Status: leave.StatusRejected}, nil)
		employees.EXPECT().AddUsedLeave(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		svc := approval.NewService(txmanager.NewMemoryManager(), leaves, employees, nil)
		_, err := svc.Reject(ctx, 7, 1002)

		require.NoError(t, err)
	})

	t.Run("negative unknown decider never marks", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		leaves := leaveMock.NewMockRepository(ctrl)
		employees := employeeMock.NewMockRepository(ctrl)

		leaves.EXPECT().FindByID(gomock.Any(), int64(7)).Return(pending(), nil)
		employees.EXPECT().FindByID(gomock.Any(), int64(4242)).Return(nil, employeeerrors.ErrEmployeeNotFound)
		leaves.EXPECT().MarkDecided(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		svc := approval.NewService(txmanager.NewMemoryManager(), leaves, employees, nil)
		_, err := svc.Approve(ctx, 7, 4242)

		assert.ErrorIs(t, err, approvalerrors.ErrUnauthorizedDecider)
	})

	t.Run("negative balance update error surfaces", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		leaves := leaveMock.NewMockRepository(ctrl)
		employees := employeeMock.NewMockRepository(ctrl)
		boom := errors.New("balance write failed")

		leaves.EXPECT().FindByID(gomock.Any(), int64(7)).Return(pending(), nil)
		employees.EXPECT().FindByID(gomock.Any(), int64(1002)).Return(manager, nil)
		employees.EXPECT().FindByID(gomock.Any(), int64(1001)).Return(owner, nil)
		leaves.EXPECT().MarkDecided(gomock.Any(), int64(7), leave.StatusApproved, int64(1002), gomock.Any()).
			Return(&leave.LeaveRequest{ID: 7, EmployeeID: 1001, Days: 3, Status: leave.StatusApproved}, nil)
		employees.EXPECT().AddUsedLeave(gomock.Any(), int64(1001), 3).Return(boom)

		svc := approval.NewService(txmanager.NewMemoryManager(), leaves, employees, nil)
		_, err := svc.Approve(ctx, 7, 1002)

		assert.ErrorIs(t, err, boom)
	})
}
