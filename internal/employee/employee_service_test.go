package employee_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	employeeMock "go-leave/internal/employee/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEmployeeService_GetOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	options := []employee.OptionResponse{
		{ID: 1001, Name: "John Doe", Department: "Engineering"},
		{ID: 1002, Name: "Jane Smith", Department: "Engineering"},
	}

	t.Run("success - cache hit skips repository", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		repo := employeeMock.NewMockRepository(ctrl)
		repo.EXPECT().FindOptions(gomock.Any()).Times(0)
		svc := employee.NewService(repo, rdb)

		cached, _ := json.Marshal(options)
		mock.ExpectGet(employee.EmployeeOptionsKey).SetVal(string(cached))

		resp, err := svc.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Equal(t, options, resp)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - cache miss loads and stores", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		repo := employeeMock.NewMockRepository(ctrl)
		repo.EXPECT().FindOptions(gomock.Any()).Return([]employee.Employee{
			{ID: 1001, Name: "John Doe", Department: "Engineering"},
			{ID: 1002, Name: "Jane Smith", Department: "Engineering"},
		}, nil).Times(1)
		svc := employee.NewService(repo, rdb)

		payload, _ := json.Marshal(options)
		mock.ExpectGet(employee.EmployeeOptionsKey).RedisNil()
		mock.ExpectSet(employee.EmployeeOptionsKey, payload, time.Hour).SetVal("OK")

		resp, err := svc.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Equal(t, options, resp)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - without redis", func(t *testing.T) {
		repo := employeeMock.NewMockRepository(ctrl)
		repo.EXPECT().FindOptions(gomock.Any()).
			Return([]employee.Employee{{ID: 1001, Name: "John Doe", Department: "Engineering"}}, nil)
		svc := employee.NewService(repo, nil)

		resp, err := svc.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("negative repository error", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		repo := employeeMock.NewMockRepository(ctrl)
		repo.EXPECT().FindOptions(gomock.Any()).Return(nil, errors.New("db down"))
		svc := employee.NewService(repo, rdb)
		mock.ExpectGet(employee.EmployeeOptionsKey).RedisNil()

		_, err := svc.GetOptions(ctx)

		assert.Error(t, err)
	})
}

func TestEmployeeService_InvalidateOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rdb, mock := redismock.NewClientMock()
	svc := employee.NewService(employeeMock.NewMockRepository(ctrl), rdb)

	mock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)
	svc.InvalidateOptions(context.Background())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeService_GetBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := employeeMock.NewMockRepository(ctrl)
		repo.EXPECT().FindByID(gomock.Any(), int64(1001)).
			Return(&employee.Employee{ID: 1001, TotalLeaveAllowance: 20, UsedLeaveDays: 5}, nil)
		svc := employee.NewService(repo, nil)

		resp, err := svc.GetBalance(ctx, 1001)

		require.NoError(t, err)
		assert.Equal(t, employee.BalanceResponse{EmployeeID: 1001, Total: 20, Used: 5, Available: 15}, resp)
	})

	t.Run("negative not found", func(t *testing.T) {
		repo := employeeMock.NewMockRepository(ctrl)
		repo.EXPECT().FindByID(gomock.Any(), int64(9999)).Return(nil, employeeerrors.ErrEmployeeNotFound)
		svc := employee.NewService(repo, nil)

		_, err := svc.GetBalance(ctx, 9999)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := employeeMock.NewMockRepository(ctrl)
	repo.EXPECT().FindByID(gomock.Any(), int64(1002)).Return(&employee.Employee{
		ID: 1002, Name: "Jane Smith", Email: "jane.smith@acme.com",
		Department: "Engineering", Role: employee.RoleManager,
		CredentialHash: "secret", TotalLeaveAllowance: 20, UsedLeaveDays: 3,
	}, nil)
	svc := employee.NewService(repo, nil)

	resp, err := svc.GetByID(context.Background(), 1002)

	require.NoError(t, err)
	assert.Equal(t, "Manager", resp.Role)
	assert.Equal(t, 3, resp.UsedLeaveDays)

	raw, _ := json.Marshal(resp)
	assert.NotContains(t, string(raw), "secret")
}
