package app

import (
	"context"
	"testing"
	"time"

	approvalerrors "go-leave/internal/approval/errors"
	autherrors "go-leave/internal/auth/errors"
	"go-leave/internal/leave"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(leave.DateLayout, s)
	require.NoError(t, err)
	return d
}

func newSeededCore(t *testing.T) *Core {
	t.Helper()
	fixture, err := seed.Default()
	require.NoError(t, err)
	core, err := NewMemoryCore(context.Background(), fixture, zap.NewNop())
	require.NoError(t, err)
	return core
}

func TestCore_SubmitApproveLifecycle(t *testing.T) {
	ctx := context.Background()
	core := newSeededCore(t)

	emp, err := core.Authenticate(ctx, "john.doe@acme.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, int64(1001), emp.ID)
	assert.Empty(t, emp.CredentialHash)

	balance, err := core.GetBalance(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, 15, balance.Available)

	submitted, err := core.SubmitLeave(ctx, 1001, leave.LeaveTypeSick, day(t, "2025-11-15"), day(t, "2025-11-17"), "Flu")
	require.NoError(t, err)
	assert.Equal(t, 3, submitted.Days)
	assert.Equal(t, string(leave.StatusPending), submitted.Status)
	assert.Equal(t, int64(7), submitted.ID)

	balance, err = core.GetBalance(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, 15, balance.Available, "pending requests do not reserve balance")

	decided, err := core.DecideLeave(ctx, submitted.ID, leave.StatusApproved, 1002)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), decided.Status)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, int64(1002), *decided.DecidedBy)

	balance, err = core.GetBalance(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, 8, balance.Used)
	assert.Equal(t, 12, balance.Available)

	_, err = core.DecideLeave(ctx, submitted.ID, leave.StatusRejected, 1002)
	assert.ErrorIs(t, err, approvalerrors.ErrAlreadyDecided)

	balance, err = core.GetBalance(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, 8, balance.Used, "second decision must not touch the balance")

	mine, err := core.ListMyRequests(ctx, 1001)
	require.NoError(t, err)
	ids := make([]int64, 0, len(mine))
	for _, r := range mine {
		assert.Equal(t, int64(1001), r.EmployeeID)
		ids = append(ids, r.ID)
	}
	assert.Contains(t, ids, submitted.ID)
}

func TestCore_AuthenticateFailuresAreGeneric(t *testing.T) {
	ctx := context.Background()
	core := newSeededCore(t)

	_, wrongPassword := core.Authenticate(ctx, "john.doe@acme.com", "nope")
	_, unknownEmail := core.Authenticate(ctx, "ghost@acme.com", "password123")

	assert.ErrorIs(t, wrongPassword, autherrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, autherrors.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestCore_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	fixture := &seed.Fixture{Employees: []seed.EmployeeSeed{{
		ID:                  2001,
		Name:                "Low Balance",
		Email:               "low@acme.com",
		Password:            "password123",
		Department:          "Sales",
		Role:                "Employee",
		TotalLeaveAllowance: 20,
		UsedLeaveDays:       18,
	}}}
	core, err := NewMemoryCore(ctx, fixture, zap.NewNop())
	require.NoError(t, err)

	_, err = core.SubmitLeave(ctx, 2001, leave.LeaveTypeAnnual, day(t, "2025-12-01"), day(t, "2025-12-05"), "Trip")
	require.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)

	var balanceErr *leaveerrors.InsufficientBalanceError
	require.ErrorAs(t, err, &balanceErr)
	assert.Equal(t, 2, balanceErr.Available)
	assert.Equal(t, 5, balanceErr.Requested)

	mine, err := core.ListMyRequests(ctx, 2001)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestCore_ListAllRequestsJoinsDirectory(t *testing.T) {
	ctx := context.Background()
	core := newSeededCore(t)

	all, err := core.ListAllRequests(ctx)
	require.NoError(t, err)
	require.Len(t, all, 6)
	for _, item := range all {
		assert.NotEmpty(t, item.EmployeeName)
		assert.NotEmpty(t, item.Department)
	}
}

func TestCore_EmployeeCannotDecide(t *testing.T) {
	ctx := context.Background()
	core := newSeededCore(t)

	submitted, err := core.SubmitLeave(ctx, 1003, leave.LeaveTypeCasual, day(t, "2025-11-20"), day(t, "2025-11-20"), "Errand")
	require.NoError(t, err)

	_, err = core.DecideLeave(ctx, submitted.ID, leave.StatusApproved, 1001)
	assert.ErrorIs(t, err, approvalerrors.ErrUnauthorizedDecider)

	_, err = core.DecideLeave(ctx, 999, leave.StatusApproved, 1002)
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
}
