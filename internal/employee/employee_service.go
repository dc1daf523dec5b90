package employee

import (
	"context"
	"encoding/json"
	"time"

	"go-leave/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKey = "employees:options"
	optionsTTL         = 1 * time.Hour
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]OptionResponse, error)
	GetByID(ctx context.Context, id int64) (EmployeeResponse, error)
	GetBalance(ctx context.Context, id int64) (BalanceResponse, error)
	InvalidateOptions(ctx context.Context)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewService builds the directory service. rdb may be nil, in which case
// options are read straight from the repository.
func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.String("request_id", contextutil.GetRequestID(ctx)))
	emps, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(emps), nil
}

func (s *service) GetOptions(ctx context.Context) ([]OptionResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []OptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// collapse concurrent cache misses into one repository read
	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		emps, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToOptions(emps)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, optionsTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get employee options failed", zap.Error(err))
		return nil, err
	}

	return v.([]OptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.Int64("employee_id", id))
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.Int64("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) GetBalance(ctx context.Context, id int64) (BalanceResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get balance failed", zap.Int64("employee_id", id), zap.Error(err))
		return BalanceResponse{}, err
	}
	return mapToBalance(*e), nil
}

func (s *service) InvalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}
