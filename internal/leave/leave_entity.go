package leave

import (
	"strings"
	"time"

	leaveerrors "go-leave/internal/leave/errors"
)

const DateLayout = "2006-01-02"

type LeaveType string

const (
	LeaveTypeCasual    LeaveType = "CASUAL"
	LeaveTypeSick      LeaveType = "SICK"
	LeaveTypeAnnual    LeaveType = "ANNUAL"
	LeaveTypeMaternity LeaveType = "MATERNITY"
	LeaveTypePaternity LeaveType = "PATERNITY"
)

var AllLeaveTypes = []LeaveType{
	LeaveTypeCasual,
	LeaveTypeSick,
	LeaveTypeAnnual,
	LeaveTypeMaternity,
	LeaveTypePaternity,
}

var leaveTypeLabels = map[LeaveType]string{
	LeaveTypeCasual:    "Casual Leave",
	LeaveTypeSick:      "Sick Leave",
	LeaveTypeAnnual:    "Annual Leave",
	LeaveTypeMaternity: "Maternity Leave",
	LeaveTypePaternity: "Paternity Leave",
}

func (t LeaveType) Valid() bool {
	_, ok := leaveTypeLabels[t]
	return ok
}

// Label is the display name, e.g. "Sick Leave".
func (t LeaveType) Label() string {
	if l, ok := leaveTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// ParseLeaveType accepts either the code ("SICK") or the label ("Sick Leave"),
// in any letter case.
func ParseLeaveType(s string) (LeaveType, error) {
	s = strings.TrimSpace(s)
	for _, t := range AllLeaveTypes {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, t.Label()) {
			return t, nil
		}
	}
	return "", leaveerrors.ErrInvalidLeaveType
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the request has been decided.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", leaveerrors.ErrInvalidStatus
	}
	return st, nil
}

type LeaveRequest struct {
	ID         int64     `gorm:"primaryKey;autoIncrement:false"`
	EmployeeID int64     `gorm:"not null;index:idx_leave_requests_employee"`
	LeaveType  LeaveType `gorm:"type:varchar(20);not null"`
	StartDate  time.Time `gorm:"type:date;not null"`
	EndDate    time.Time `gorm:"type:date;not null"`
	Days       int       `gorm:"not null"`
	Reason     string    `gorm:"type:text;not null"`
	Status     Status    `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`
	AppliedAt  time.Time `gorm:"not null;index:idx_leave_requests_employee"`
	DecidedBy  *int64
	DecidedAt  *time.Time
}

func (LeaveRequest) TableName() string { return "leave_requests" }

func (l LeaveRequest) clone() LeaveRequest {
	cp := l
	if l.DecidedBy != nil {
		v := *l.DecidedBy
		cp.DecidedBy = &v
	}
	if l.DecidedAt != nil {
		v := *l.DecidedAt
		cp.DecidedAt = &v
	}
	return cp
}

// LeaveListItem is a request joined with the owner's directory details.
type LeaveListItem struct {
	LeaveRequest
	EmployeeName string
	Department   string
}

// ListFilter narrows a request listing. Empty slices match everything.
type ListFilter struct {
	Statuses    []Status
	LeaveTypes  []LeaveType
	PendingOnly bool
}

func (f ListFilter) statuses() []Status {
	if f.PendingOnly {
		return []Status{StatusPending}
	}
	return f.Statuses
}

func (f ListFilter) matches(l LeaveRequest) bool {
	if st := f.statuses(); len(st) > 0 && !containsStatus(st, l.Status) {
		return false
	}
	if len(f.LeaveTypes) > 0 && !containsLeaveType(f.LeaveTypes, l.LeaveType) {
		return false
	}
	return true
}

func containsStatus(list []Status, s Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsLeaveType(list []LeaveType, t LeaveType) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}

// ParseDate reads a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(v string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(v), time.UTC)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func toDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// CountDays is the inclusive number of calendar days from start to end.
// It is zero or negative when end precedes start. Unix seconds keep the
// whole 0001..9999 range exact, where a time.Duration would overflow.
func CountDays(start, end time.Time) int {
	return int((toDate(end).Unix()-toDate(start).Unix())/secondsPerDay) + 1
}
