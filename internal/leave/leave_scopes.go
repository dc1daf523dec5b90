package leave

import "gorm.io/gorm"

// OwnedBy restricts a query to one employee's requests.
func OwnedBy(employeeID int64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id = ?", employeeID)
	}
}

func Filtered(f ListFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if st := f.statuses(); len(st) > 0 {
			db = db.Where("status IN ?", st)
		}
		if len(f.LeaveTypes) > 0 {
			db = db.Where("leave_type IN ?", f.LeaveTypes)
		}
		return db
	}
}
