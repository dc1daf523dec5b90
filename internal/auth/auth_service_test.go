package auth_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"go-leave/internal/auth"
	autherrors "go-leave/internal/auth/errors"
	"go-leave/internal/employee"
	employeeMock "go-leave/internal/employee/mock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testSecret = []byte("test-secret")

func seededDirectory(t *testing.T) employee.Repository {
	t.Helper()
	repo := employee.NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &employee.Employee{
		ID: 1001, Name: "John Doe", Email: "john.doe@acme.com", Department: "Engineering",
		Role: employee.RoleEmployee, CredentialHash: password123Digest,
		TotalLeaveAllowance: 20, UsedLeaveDays: 5,
	}))
	require.NoError(t, repo.Create(ctx, &employee.Employee{
		ID: 1002, Name: "Jane Smith", Email: "jane.smith@acme.com", Department: "Engineering",
		Role: employee.RoleManager, CredentialHash: password123Digest,
		TotalLeaveAllowance: 20, UsedLeaveDays: 3,
	}))
	return repo
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()
	svc := auth.NewService(seededDirectory(t), auth.SHA256Hasher{}, auth.TokenConfig{Secret: testSecret})

	t.Run("success", func(t *testing.T) {
		e, err := svc.Authenticate(ctx, "john.doe@acme.com", "password123")

		require.NoError(t, err)
		assert.Equal(t, int64(1001), e.ID)
		assert.Equal(t, employee.RoleEmployee, e.Role)
		assert.Equal(t, 15, e.Available())
		assert.Empty(t, e.CredentialHash)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "john.doe@acme.com", "password124")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email gives the same error", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody@acme.com", "password123")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative email match is case sensitive", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "John.Doe@acme.com", "password123")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("mutating the result leaves the directory intact", func(t *testing.T) {
		e, err := svc.Authenticate(ctx, "john.doe@acme.com", "password123")
		require.NoError(t, err)
		e.UsedLeaveDays = 19

		again, err := svc.Authenticate(ctx, "john.doe@acme.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, 5, again.UsedLeaveDays)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc := auth.NewService(seededDirectory(t), nil, auth.TokenConfig{Secret: testSecret, TTL: time.Minute})

	t.Run("success issues a signed token", func(t *testing.T) {
		resp, err := svc.Login(ctx, "jane.smith@acme.com", "password123")
		require.NoError(t, err)

		assert.Equal(t, int64(1002), resp.Employee.EmployeeID)
		assert.Equal(t, "Manager", resp.Employee.Role)
		assert.Greater(t, resp.ExpiresAt, time.Now().Unix())

		token, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
			return testSecret, nil
		})
		require.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, strconv.FormatInt(1002, 10), claims["employee_id"])
		assert.Equal(t, "Manager", claims["role"])
		assert.Equal(t, jwt.SigningMethodHS256.Alg(), token.Method.Alg())
	})

	t.Run("negative bad credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, "jane.smith@acme.com", "nope")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
		assert.Empty(t, resp.AccessToken)
	})
}

func TestService_GetMe(t *testing.T) {
	svc := auth.NewService(seededDirectory(t), nil, auth.TokenConfig{Secret: testSecret})

	resp, err := svc.GetMe(context.Background(), 1001)
	require.NoError(t, err)
	assert.Equal(t, "john.doe@acme.com", resp.Email)
	assert.Equal(t, "Engineering", resp.Department)

	_, err = svc.GetMe(context.Background(), 4242)
	assert.Error(t, err)
}

func TestService_AuthenticateLookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := employeeMock.NewMockRepository(ctrl)
	repo.EXPECT().
		FindByEmail(gomock.Any(), "john.doe@acme.com").
		Return(nil, errors.New("connection refused"))

	svc := auth.NewService(repo, auth.SHA256Hasher{}, auth.TokenConfig{Secret: testSecret})
	_, err := svc.Login(context.Background(), "john.doe@acme.com", "password123")

	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}
