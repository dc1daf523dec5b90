package employee

import "time"

type Employee struct {
	ID                  int64  `gorm:"primaryKey;autoIncrement:false"`
	Name                string `gorm:"type:varchar(255);not null"`
	Email               string `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	Department          string `gorm:"type:varchar(100);not null"`
	Role                Role   `gorm:"type:varchar(20);not null"`
	CredentialHash      string `gorm:"type:varchar(255);not null"`
	TotalLeaveAllowance int    `gorm:"not null;default:0"`
	UsedLeaveDays       int    `gorm:"not null;default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Available is the remaining balance: total allowance minus used days.
func (e Employee) Available() int {
	return e.TotalLeaveAllowance - e.UsedLeaveDays
}
