package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hrms/internal/models"
	"hrms/internal/storage"
	"hrms/internal/utils"
)

// ReportCache holds the department report between employee inserts.
// Implementations must treat every failure as a miss.
//
// DepartmentReport also returns the generation it looked under, hit or miss.
// StoreDepartmentReport must drop rows whose generation is no longer current,
// so a report read before an insert cannot outlive that insert's invalidation.
type ReportCache interface {
	DepartmentReport(ctx context.Context) (rows []models.DepartmentCount, gen int64, ok bool)
	StoreDepartmentReport(ctx context.Context, gen int64, rows []models.DepartmentCount)
	InvalidateDepartmentReport(ctx context.Context)
}

type NewEmployee struct {
	Name          string
	Designation   string
	Department    string
	DateOfJoining time.Time
}

type EmployeeDetails struct {
	Employee   models.Employee
	Attendance []models.Attendance
}

type HRService struct {
	txManager storage.TxManager
	cache     ReportCache
	log       *slog.Logger
}

func NewHRService(txManager storage.TxManager, cache ReportCache, lg *slog.Logger) *HRService {
	if cache == nil {
		cache = noopCache{}
	}
	if lg == nil {
		lg = slog.Default()
	}
	return &HRService{txManager: txManager, cache: cache, log: lg}
}

func (s *HRService) AddEmployee(ctx context.Context, in NewEmployee) (*models.Employee, error) {
	emp := models.Employee{
		Name:          strings.TrimSpace(in.Name),
		Designation:   strings.TrimSpace(in.Designation),
		Department:    strings.TrimSpace(in.Department),
		DateOfJoining: utils.DateOnly(in.DateOfJoining),
	}
	switch {
	case emp.Name == "":
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	case emp.Designation == "":
		return nil, fmt.Errorf("%w: designation is required", ErrInvalidInput)
	case emp.Department == "":
		return nil, fmt.Errorf("%w: department is required", ErrInvalidInput)
	case in.DateOfJoining.IsZero():
		return nil, fmt.Errorf("%w: date_of_joining is required", ErrInvalidInput)
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		return repos.Employees.Create(ctx, &emp)
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateDepartmentReport(ctx)
	s.log.Info("employee added", "employee_id", emp.ID, "department", emp.Department)
	return &emp, nil
}

func (s *HRService) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var rows []models.Employee
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		var err error
		rows, err = repos.Employees.List(ctx)
		return err
	})
	return rows, err
}

// MarkAttendance checks, in order: the employee exists, the day is not
// already marked, the day is not before the joining date. The composite key
// on attendances backs the duplicate check against concurrent writers.
func (s *HRService) MarkAttendance(ctx context.Context, employeeID uint, date time.Time, present bool) error {
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	day := utils.DateOnly(date)

	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		emp, err := repos.Employees.LockByID(ctx, employeeID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrEmployeeNotFound
			}
			return err
		}

		exists, err := repos.Attendance.Exists(ctx, employeeID, day)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateAttendance
		}

		if day.Before(utils.DateOnly(emp.DateOfJoining)) {
			return ErrBeforeJoining
		}

		err = repos.Attendance.Create(ctx, &models.Attendance{
			EmployeeID: employeeID,
			Date:       day,
			Status:     present,
		})
		if errors.Is(err, storage.ErrDuplicate) {
			return ErrDuplicateAttendance
		}
		return err
	})
	if err != nil {
		return err
	}

	s.log.Info("attendance marked",
		"employee_id", employeeID,
		"date", utils.FormatDate(day),
		"present", present,
	)
	return nil
}

func (s *HRService) AttendanceDetails(ctx context.Context, employeeID uint) ([]models.Attendance, error) {
	details, err := s.EmployeeDetails(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return details.Attendance, nil
}

func (s *HRService) EmployeeDetails(ctx context.Context, employeeID uint) (*EmployeeDetails, error) {
	var out EmployeeDetails
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		emp, err := repos.Employees.GetByID(ctx, employeeID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrEmployeeNotFound
			}
			return err
		}
		rows, err := repos.Attendance.ListByEmployee(ctx, employeeID)
		if err != nil {
			return err
		}
		out.Employee = *emp
		out.Attendance = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *HRService) DepartmentReport(ctx context.Context) ([]models.DepartmentCount, error) {
	cached, gen, ok := s.cache.DepartmentReport(ctx)
	if ok {
		return cached, nil
	}

	var rows []models.DepartmentCount
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		var err error
		rows, err = repos.Employees.CountByDepartment(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.StoreDepartmentReport(ctx, gen, rows)
	return rows, nil
}

type noopCache struct{}

func (noopCache) DepartmentReport(context.Context) ([]models.DepartmentCount, int64, bool) {
	return nil, 0, false
}
func (noopCache) StoreDepartmentReport(context.Context, int64, []models.DepartmentCount) {}
func (noopCache) InvalidateDepartmentReport(context.Context)                            {}
