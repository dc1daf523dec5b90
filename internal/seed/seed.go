// Package seed loads the demo directory and ledger fixture.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"go-leave/internal/auth"
	"go-leave/internal/employee"
	"go-leave/internal/leave"
	"go-leave/internal/shared/counter"
	"go-leave/internal/shared/txmanager"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const appliedAtLayout = "2006-01-02 15:04:05"

//go:embed seed.yaml
var defaultFixture []byte

type Fixture struct {
	Employees     []EmployeeSeed     `yaml:"employees"`
	LeaveRequests []LeaveRequestSeed `yaml:"leave_requests"`
}

type EmployeeSeed struct {
	ID                  int64  `yaml:"id"`
	Name                string `yaml:"name"`
	Email               string `yaml:"email"`
	Password            string `yaml:"password"`
	CredentialHash      string `yaml:"credential_hash"`
	Department          string `yaml:"department"`
	Role                string `yaml:"role"`
	TotalLeaveAllowance int    `yaml:"total_leave_allowance"`
	UsedLeaveDays       int    `yaml:"used_leave_days"`
}

type LeaveRequestSeed struct {
	EmployeeID int64  `yaml:"employee_id"`
	LeaveType  string `yaml:"leave_type"`
	StartDate  string `yaml:"start_date"`
	EndDate    string `yaml:"end_date"`
	Days       int    `yaml:"days"`
	Reason     string `yaml:"reason"`
	Status     string `yaml:"status"`
	AppliedAt  string `yaml:"applied_at"`
	DecidedBy  *int64 `yaml:"decided_by"`
}

// Default returns the embedded demo fixture.
func Default() (*Fixture, error) {
	return Parse(defaultFixture)
}

// Load reads a fixture file, or the embedded default when path is empty.
func Load(path string) (*Fixture, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixture, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("seed: decode: %w", err)
	}
	return &f, nil
}

type Deps struct {
	Tx        txmanager.Manager
	Employees employee.Repository
	Leaves    leave.Repository
	Counter   counter.Repository
	Hasher    auth.Hasher
	Logger    *zap.Logger
}

// Apply inserts the fixture. Requests keep their recorded status, decider and
// days, and balances are taken as given. A directory that already has
// employees is left untouched.
func Apply(ctx context.Context, f *Fixture, deps Deps) error {
	logger := deps.Logger
	if logger == nil {
		logger = zap.L()
	}
	logger = logger.Named("seed")

	existing, err := deps.Employees.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("seed: inspect directory: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("directory already populated, skipping seed", zap.Int("employees", len(existing)))
		return nil
	}

	employees, err := buildEmployees(f.Employees, deps.Hasher)
	if err != nil {
		return err
	}
	requests, err := buildRequests(f.LeaveRequests)
	if err != nil {
		return err
	}

	err = deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, e := range employees {
			if err := deps.Employees.Create(ctx, e); err != nil {
				return fmt.Errorf("seed: employee %d: %w", e.ID, err)
			}
		}
		for i, r := range requests {
			if _, err := deps.Employees.FindByID(ctx, r.EmployeeID); err != nil {
				return fmt.Errorf("seed: leave request %d: owner %d: %w", i+1, r.EmployeeID, err)
			}
			id, err := deps.Counter.GetNextValue(ctx, counter.LeaveRequestCounter)
			if err != nil {
				return fmt.Errorf("seed: allocate leave id: %w", err)
			}
			r.ID = id
			if err := deps.Leaves.Create(ctx, r); err != nil {
				return fmt.Errorf("seed: leave request %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("seed applied",
		zap.Int("employees", len(employees)),
		zap.Int("leave_requests", len(requests)),
	)
	return nil
}

func buildEmployees(seeds []EmployeeSeed, hasher auth.Hasher) ([]*employee.Employee, error) {
	if hasher == nil {
		hasher = auth.SHA256Hasher{}
	}
	out := make([]*employee.Employee, 0, len(seeds))
	for _, s := range seeds {
		role, err := employee.ParseRole(s.Role)
		if err != nil {
			return nil, fmt.Errorf("seed: employee %d: %w", s.ID, err)
		}
		if s.UsedLeaveDays < 0 {
			return nil, fmt.Errorf("seed: employee %d: negative used_leave_days", s.ID)
		}

		hash := s.CredentialHash
		if hash == "" {
			if s.Password == "" {
				return nil, fmt.Errorf("seed: employee %d: password or credential_hash is required", s.ID)
			}
			if hash, err = hasher.Hash(s.Password); err != nil {
				return nil, fmt.Errorf("seed: employee %d: hash password: %w", s.ID, err)
			}
		}

		out = append(out, &employee.Employee{
			ID:                  s.ID,
			Name:                s.Name,
			Email:               s.Email,
			Department:          s.Department,
			Role:                role,
			CredentialHash:      hash,
			TotalLeaveAllowance: s.TotalLeaveAllowance,
			UsedLeaveDays:       s.UsedLeaveDays,
		})
	}
	return out, nil
}

func buildRequests(seeds []LeaveRequestSeed) ([]*leave.LeaveRequest, error) {
	out := make([]*leave.LeaveRequest, 0, len(seeds))
	for i, s := range seeds {
		n := i + 1
		lt, err := leave.ParseLeaveType(s.LeaveType)
		if err != nil {
			return nil, fmt.Errorf("seed: leave request %d: %w", n, err)
		}
		start, err := leave.ParseDate(s.StartDate)
		if err != nil {
			return nil, fmt.Errorf("seed: leave request %d: %w", n, err)
		}
		end, err := leave.ParseDate(s.EndDate)
		if err != nil {
			return nil, fmt.Errorf("seed: leave request %d: %w", n, err)
		}
		if start.After(end) {
			return nil, fmt.Errorf("seed: leave request %d: start_date after end_date", n)
		}
		status, err := leave.ParseStatus(s.Status)
		if err != nil {
			return nil, fmt.Errorf("seed: leave request %d: %w", n, err)
		}
		if status.IsTerminal() != (s.DecidedBy != nil) {
			return nil, fmt.Errorf("seed: leave request %d: decided_by must be set exactly when the request is decided", n)
		}
		applied, err := time.ParseInLocation(appliedAtLayout, s.AppliedAt, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("seed: leave request %d: applied_at: %w", n, err)
		}

		days := s.Days
		if days == 0 {
			days = leave.CountDays(start, end)
		}
		if days < 1 {
			return nil, fmt.Errorf("seed: leave request %d: days must be positive", n)
		}

		out = append(out, &leave.LeaveRequest{
			EmployeeID: s.EmployeeID,
			LeaveType:  lt,
			StartDate:  start,
			EndDate:    end,
			Days:       days,
			Reason:     s.Reason,
			Status:     status,
			AppliedAt:  applied,
			DecidedBy:  s.DecidedBy,
		})
	}
	return out, nil
}
