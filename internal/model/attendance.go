package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusPartial = "partial"
)

// Attendance is one row per employee per calendar day. The composite unique
// index is the real duplicate guard for concurrent clock-ins; the handler
// checks are just for friendly error messages.
type Attendance struct {
	gorm.Model
	EmployeeID uint   `json:"employee_id" gorm:"uniqueIndex:idx_employee_date;not null"`
	Date       string `json:"date" gorm:"type:varchar(10);uniqueIndex:idx_employee_date;not null"` // YYYY-MM-DD

	ClockIn  *time.Time `json:"clock_in"`
	ClockOut *time.Time `json:"clock_out"`

	// Hours between clock-in and clock-out, 2 decimals, zero until clock-out
	WorkingHours float64 `json:"working_hours"`
	Status       string  `json:"status" gorm:"type:varchar(10);default:present"`

	Employee Employee `json:"employee" gorm:"foreignKey:EmployeeID"`
}
