package rbac

import (
	"fmt"
	"strings"

	"go-leave/internal/employee"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
)

const (
	ResourceLeave    = "leave"
	ResourceBalance  = "balance"
	ResourceEmployee = "employee"

	ActionCreate  = "create"
	ActionReadOwn = "read_own"
	ActionReadAll = "read_all"
	ActionApprove = "approve"
	ActionRead    = "read"
)

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

type Permission struct {
	Resource string
	Action   string
}

// DefaultPolicy lists the rights of each role. Managers hold every employee
// right plus the approval rights.
func DefaultPolicy() map[employee.Role][]Permission {
	base := []Permission{
		{ResourceLeave, ActionCreate},
		{ResourceLeave, ActionReadOwn},
		{ResourceBalance, ActionReadOwn},
	}
	manager := append(append([]Permission{}, base...),
		Permission{ResourceLeave, ActionReadAll},
		Permission{ResourceLeave, ActionApprove},
		Permission{ResourceEmployee, ActionRead},
	)
	return map[employee.Role][]Permission{
		employee.RoleEmployee: base,
		employee.RoleManager:  manager,
	}
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

// service only reads the enforcer. The policy is loaded once by NewEnforcer
// and never changes afterwards, so Enforce needs no lock.
type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

func NewEnforcer(policy map[employee.Role][]Permission) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("rbac model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("rbac enforcer: %w", err)
	}
	for _, role := range employee.AllRoles {
		for _, p := range policy[role] {
			if _, err := e.AddPolicy(role.String(), p.Resource, p.Action); err != nil {
				return nil, fmt.Errorf("rbac policy %s %s:%s: %w", role, p.Resource, p.Action, err)
			}
		}
	}
	return e, nil
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{enforcer: enforcer, logger: l}
}

// Enforce normalises the role through employee.ParseRole, so unknown role
// strings are denied instead of matched loosely.
func (s *service) Enforce(role, resource, action string) (bool, error) {
	parsed, err := employee.ParseRole(role)
	if err != nil {
		s.logger.Debug("rbac enforce unknown role", zap.String("role", role))
		return false, nil
	}

	allowed, err := s.enforcer.Enforce(parsed.String(), resource, strings.ToLower(action))
	if err != nil {
		s.logger.Error("rbac enforce failed", zap.String("role", role), zap.Error(err))
		return false, err
	}
	s.logger.Debug("rbac enforce result",
		zap.String("role", parsed.String()),
		zap.String("resource", resource),
		zap.String("action", action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}
