package leave

import "time"

type SubmitLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

type LeaveResponse struct {
	ID             int64      `json:"id"`
	EmployeeID     int64      `json:"employee_id"`
	LeaveType      string     `json:"leave_type"`
	LeaveTypeLabel string     `json:"leave_type_label"`
	StartDate      string     `json:"start_date"`
	EndDate        string     `json:"end_date"`
	Days           int        `json:"days"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status"`
	AppliedAt      time.Time  `json:"applied_at"`
	DecidedBy      *int64     `json:"decided_by"`
	DecidedAt      *time.Time `json:"decided_at,omitempty"`
}

type LeaveListItemResponse struct {
	LeaveResponse
	EmployeeName string `json:"employee_name"`
	Department   string `json:"department"`
}

func MapToResponse(l LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:             l.ID,
		EmployeeID:     l.EmployeeID,
		LeaveType:      string(l.LeaveType),
		LeaveTypeLabel: l.LeaveType.Label(),
		StartDate:      l.StartDate.Format(DateLayout),
		EndDate:        l.EndDate.Format(DateLayout),
		Days:           l.Days,
		Reason:         l.Reason,
		Status:         string(l.Status),
		AppliedAt:      l.AppliedAt,
		DecidedBy:      l.DecidedBy,
		DecidedAt:      l.DecidedAt,
	}
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = MapToResponse(l)
	}
	return resp
}

func mapToListItems(items []LeaveListItem) []LeaveListItemResponse {
	resp := make([]LeaveListItemResponse, len(items))
	for i, it := range items {
		resp[i] = LeaveListItemResponse{
			LeaveResponse: MapToResponse(it.LeaveRequest),
			EmployeeName:  it.EmployeeName,
			Department:    it.Department,
		}
	}
	return resp
}
