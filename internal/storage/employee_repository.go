package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hrms/internal/models"
)

type EmployeeRepository interface {
	Create(ctx context.Context, emp *models.Employee) error
	GetByID(ctx context.Context, id uint) (*models.Employee, error)
	// LockByID loads the employee and holds a row lock until the transaction ends.
	LockByID(ctx context.Context, id uint) (*models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)
	CountByDepartment(ctx context.Context) ([]models.DepartmentCount, error)
}

type EmployeeGormRepository struct {
	db *gorm.DB
}

func NewEmployeeGormRepository(db *gorm.DB) *EmployeeGormRepository {
	return &EmployeeGormRepository{db: db}
}

func (r *EmployeeGormRepository) Create(ctx context.Context, emp *models.Employee) error {
	if err := r.db.WithContext(ctx).Create(emp).Error; err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeGormRepository) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	return r.first(r.db.WithContext(ctx), id)
}

func (r *EmployeeGormRepository) LockByID(ctx context.Context, id uint) (*models.Employee, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *EmployeeGormRepository) first(q *gorm.DB, id uint) (*models.Employee, error) {
	var emp models.Employee
	if err := q.First(&emp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load employee %d: %w", id, err)
	}
	return &emp, nil
}

func (r *EmployeeGormRepository) List(ctx context.Context) ([]models.Employee, error) {
	var rows []models.Employee
	if err := r.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return rows, nil
}

func (r *EmployeeGormRepository) CountByDepartment(ctx context.Context) ([]models.DepartmentCount, error) {
	var rows []models.DepartmentCount
	err := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Select("department, COUNT(*) AS count").
		Group("department").
		Order("department asc").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count employees by department: %w", err)
	}
	return rows, nil
}
