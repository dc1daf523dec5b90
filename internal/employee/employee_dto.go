package employee

type EmployeeResponse struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	Department          string `json:"department"`
	Role                string `json:"role"`
	TotalLeaveAllowance int    `json:"total_leave_allowance"`
	UsedLeaveDays       int    `json:"used_leave_days"`
}

type OptionResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

type BalanceResponse struct {
	EmployeeID int64 `json:"employee_id"`
	Total      int   `json:"total"`
	Used       int   `json:"used"`
	Available  int   `json:"available"`
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                  e.ID,
		Name:                e.Name,
		Email:               e.Email,
		Department:          e.Department,
		Role:                e.Role.String(),
		TotalLeaveAllowance: e.TotalLeaveAllowance,
		UsedLeaveDays:       e.UsedLeaveDays,
	}
}

func mapToListResponse(emps []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, 0, len(emps))
	for _, e := range emps {
		resp = append(resp, mapToResponse(e))
	}
	return resp
}

func mapToOptions(emps []Employee) []OptionResponse {
	resp := make([]OptionResponse, 0, len(emps))
	for _, e := range emps {
		resp = append(resp, OptionResponse{ID: e.ID, Name: e.Name, Department: e.Department})
	}
	return resp
}

func mapToBalance(e Employee) BalanceResponse {
	return BalanceResponse{
		EmployeeID: e.ID,
		Total:      e.TotalLeaveAllowance,
		Used:       e.UsedLeaveDays,
		Available:  e.Available(),
	}
}
