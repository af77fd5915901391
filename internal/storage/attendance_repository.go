package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hrms/internal/models"
)

type AttendanceRepository interface {
	Exists(ctx context.Context, employeeID uint, date time.Time) (bool, error)
	Create(ctx context.Context, row *models.Attendance) error
	ListByEmployee(ctx context.Context, employeeID uint) ([]models.Attendance, error)
}

type AttendanceGormRepository struct {
	db *gorm.DB
}

func NewAttendanceGormRepository(db *gorm.DB) *AttendanceGormRepository {
	return &AttendanceGormRepository{db: db}
}

func (r *AttendanceGormRepository) Exists(ctx context.Context, employeeID uint, date time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("employee_id = ? AND date = ?", employeeID, date).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check attendance: %w", err)
	}
	return n > 0, nil
}

// Create returns ErrDuplicate when (employee_id, date) is already taken.
func (r *AttendanceGormRepository) Create(ctx context.Context, row *models.Attendance) error {
	err := r.db.WithContext(ctx).Create(row).Error
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

func (r *AttendanceGormRepository) ListByEmployee(ctx context.Context, employeeID uint) ([]models.Attendance, error) {
	var rows []models.Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return rows, nil
}
