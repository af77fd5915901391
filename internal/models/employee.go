// internal/models/employee.go
package models

import "time"

type Employee struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Designation   string    `gorm:"type:varchar(255);not null" json:"designation"`
	Department    string    `gorm:"type:varchar(255);index;not null" json:"department"`
	DateOfJoining time.Time `gorm:"type:date;not null" json:"date_of_joining"`
	CreatedAt     time.Time `json:"created_at"`

	Attendances []Attendance `gorm:"foreignKey:EmployeeID;constraint:OnDelete:RESTRICT" json:"-"`
}

// DepartmentCount is one row of the department report.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}
