package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	autherrors "go-leave/internal/auth/errors"
	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const DefaultAccessTokenTTL = 15 * time.Minute

// TokenConfig controls the access tokens issued by Login.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	// Authenticate verifies an email and password pair. The returned record
	// is a copy with its credential hash cleared.
	Authenticate(ctx context.Context, email, password string) (employee.Employee, error)
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	GetMe(ctx context.Context, employeeID int64) (AuthResponse, error)
}

type service struct {
	repo      employee.Repository
	hasher    Hasher
	tokens    TokenConfig
	dummyHash string
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(repo employee.Repository, hasher Hasher, tokens TokenConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if hasher == nil {
		hasher = SHA256Hasher{}
	}
	if tokens.TTL <= 0 {
		tokens.TTL = DefaultAccessTokenTTL
	}

	// compared against when the email is unknown so both failures cost the same
	dummy, err := hasher.Hash("invalid-credential-placeholder")
	if err != nil {
		l.Warn("dummy hash generation failed", zap.Error(err))
	}

	return &service{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummy,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Authenticate(ctx context.Context, email, password string) (employee.Employee, error) {
	e, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.hasher.Compare(s.dummyHash, password)
		if !errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			s.logger.Error("credential lookup failed", zap.Error(err))
		}
		return employee.Employee{}, autherrors.ErrInvalidCredentials
	}

	if !s.hasher.Compare(e.CredentialHash, password) {
		s.logger.Info("authentication failed", zap.Int64("employee_id", e.ID))
		return employee.Employee{}, autherrors.ErrInvalidCredentials
	}

	out := *e
	out.CredentialHash = ""
	return out, nil
}

func (s *service) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	e, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return LoginResponse{}, err
	}

	expiresAt := s.now().Add(s.tokens.TTL)
	token, err := s.generateToken(e.ID, e.Role, expiresAt)
	if err != nil {
		s.logger.Error("sign access token failed", zap.Int64("employee_id", e.ID), zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("employee logged in", zap.Int64("employee_id", e.ID), zap.String("role", e.Role.String()))
	return LoginResponse{
		Employee:    mapToAuthResponse(e),
		AccessToken: token,
		ExpiresAt:   expiresAt.Unix(),
	}, nil
}

func (s *service) GetMe(ctx context.Context, employeeID int64) (AuthResponse, error) {
	e, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return AuthResponse{}, err
	}
	return mapToAuthResponse(*e), nil
}

func (s *service) generateToken(employeeID int64, role employee.Role, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": strconv.FormatInt(employeeID, 10),
		"role":        role.String(),
		"exp":         expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.tokens.Secret)
}

func mapToAuthResponse(e employee.Employee) AuthResponse {
	return AuthResponse{
		EmployeeID: e.ID,
		Email:      e.Email,
		Name:       e.Name,
		Department: e.Department,
		Role:       e.Role.String(),
	}
}
