// internal/models/attendance.go
package models

import "time"

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// Attendance is keyed by (employee_id, date); the composite primary key is
// what keeps a second mark for the same day out of the table.
type Attendance struct {
	EmployeeID uint      `gorm:"primaryKey;autoIncrement:false" json:"employee_id"`
	Date       time.Time `gorm:"primaryKey;type:date" json:"date"`
	Status     bool      `gorm:"not null;default:false" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func (a Attendance) StatusLabel() string {
	if a.Status {
		return StatusPresent
	}
	return StatusAbsent
}
