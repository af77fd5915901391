package storage

import (
	"context"

	"gorm.io/gorm"
)

type Repositories struct {
	Employees  EmployeeRepository
	Attendance AttendanceRepository
}

type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

type GormTxManager struct {
	db *gorm.DB
}

func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// WithTx commits when fn returns nil and rolls back otherwise.
func (m *GormTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, Repositories{
			Employees:  NewEmployeeGormRepository(tx),
			Attendance: NewAttendanceGormRepository(tx),
		})
	})
}
