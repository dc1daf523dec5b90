package rbac

import (
	"sync"
	"testing"

	"go-leave/internal/employee"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	e, err := NewEnforcer(DefaultPolicy())
	require.NoError(t, err)
	return NewService(e)
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t)

	t.Run("employee can submit and read own", func(t *testing.T) {
		allowed, err := svc.Enforce("Employee", ResourceLeave, ActionCreate)
		assert.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = svc.Enforce("EMPLOYEE", ResourceBalance, ActionReadOwn)
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("negative employee cannot approve", func(t *testing.T) {
		allowed, err := svc.Enforce("Employee", ResourceLeave, ActionApprove)
		assert.NoError(t, err)
		assert.False(t, allowed)

		allowed, err = svc.Enforce("Employee", ResourceLeave, ActionReadAll)
		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("manager has every right", func(t *testing.T) {
		for _, p := range DefaultPolicy()[employee.RoleManager] {
			allowed, err := svc.Enforce("Manager", p.Resource, p.Action)
			assert.NoError(t, err)
			assert.True(t, allowed, p.Resource+":"+p.Action)
		}
	})

	t.Run("negative unknown role is denied", func(t *testing.T) {
		allowed, err := svc.Enforce("Admin", ResourceLeave, ActionCreate)
		assert.NoError(t, err)
		assert.False(t, allowed)

		allowed, err = svc.Enforce("", ResourceLeave, ActionCreate)
		assert.NoError(t, err)
		assert.False(t, allowed)
	})
}

func TestRBACService_ConcurrentEnforce(t *testing.T) {
	svc := newTestService(t)

	const n = 64
	var wg sync.WaitGroup
	results := make([]bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			role := "Employee"
			if i%2 == 0 {
				role = "Manager"
			}
			allowed, err := svc.Enforce(role, ResourceLeave, ActionApprove)
			assert.NoError(t, err)
			results[i] = allowed
		}(i)
	}
	wg.Wait()

	for i, allowed := range results {
		assert.Equal(t, i%2 == 0, allowed, i)
	}
}
