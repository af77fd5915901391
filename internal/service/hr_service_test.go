package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/internal/models"
	"hrms/internal/utils"
)

func day(s string) time.Time {
	d, err := utils.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestService(t *testing.T) (*HRService, *fakeStore, *mapCache) {
	t.Helper()
	store := newFakeStore()
	cache := &mapCache{}
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHRService(store, cache, lg), store, cache
}

func addEmployee(t *testing.T, svc *HRService, dept, joined string) *models.Employee {
	t.Helper()
	emp, err := svc.AddEmployee(context.Background(), NewEmployee{
		Name:          "Asha Rao",
		Designation:   "Engineer",
		Department:    dept,
		DateOfJoining: day(joined),
	})
	require.NoError(t, err)
	return emp
}

func TestAddEmployeeValidates(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	cases := map[string]NewEmployee{
		"name":        {Designation: "Eng", Department: "R&D", DateOfJoining: day("2024-01-01")},
		"designation": {Name: "A", Department: "R&D", DateOfJoining: day("2024-01-01")},
		"department":  {Name: "A", Designation: "Eng", Department: "  ", DateOfJoining: day("2024-01-01")},
		"date":        {Name: "A", Designation: "Eng", Department: "R&D"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.AddEmployee(ctx, in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, store.employees)
}

func TestAddEmployeeTrimsAndInvalidatesReport(t *testing.T) {
	svc, _, cache := newTestService(t)

	emp, err := svc.AddEmployee(context.Background(), NewEmployee{
		Name:          "  Bilal  ",
		Designation:   "Manager",
		Department:    " Sales ",
		DateOfJoining: time.Date(2023, 6, 1, 15, 4, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotZero(t, emp.ID)
	assert.Equal(t, "Bilal", emp.Name)
	assert.Equal(t, "Sales", emp.Department)
	assert.Equal(t, day("2023-06-01"), emp.DateOfJoining)
	assert.Equal(t, 1, cache.invalidated)
}

func TestMarkAttendanceUnknownEmployeeShortCircuits(t *testing.T) {
	svc, store, _ := newTestService(t)

	err := svc.MarkAttendance(context.Background(), 42, day("2024-01-10"), true)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	assert.Equal(t, 1, store.lockCalls)
	assert.Zero(t, store.existsCalls)
	assert.Zero(t, store.createCalls)
}

func TestMarkAttendanceDuplicateCheckedBeforeDate(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	emp := addEmployee(t, svc, "Engineering", "2024-01-10")

	require.NoError(t, svc.MarkAttendance(ctx, emp.ID, day("2024-01-10"), true))

	for _, present := range []bool{true, false} {
		err := svc.MarkAttendance(ctx, emp.ID, day("2024-01-10"), present)
		assert.ErrorIs(t, err, ErrConflict)
	}
	assert.Equal(t, 1, store.createCalls)
}

func TestMarkAttendanceBeforeJoiningAlwaysFails(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	emp := addEmployee(t, svc, "Engineering", "2024-01-10")

	for d := day("2023-12-01"); d.Before(day("2024-01-10")); d = d.AddDate(0, 0, 1) {
		err := svc.MarkAttendance(ctx, emp.ID, d, true)
		require.ErrorIs(t, err, ErrInvalidInput, utils.FormatDate(d))
		require.ErrorIs(t, err, ErrBeforeJoining)
	}
	assert.Zero(t, store.createCalls)
}

func TestMarkAttendanceRaceReportsConflict(t *testing.T) {
	svc, store, _ := newTestService(t)
	emp := addEmployee(t, svc, "Engineering", "2024-01-10")
	store.raceOnCreate = true

	err := svc.MarkAttendance(context.Background(), emp.ID, day("2024-01-11"), true)
	assert.ErrorIs(t, err, ErrDuplicateAttendance)
}

func TestMarkAttendanceRequiresDate(t *testing.T) {
	svc, store, _ := newTestService(t)
	err := svc.MarkAttendance(context.Background(), 1, time.Time{}, true)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, store.lockCalls)
}

func TestAttendanceScenario(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	emp := addEmployee(t, svc, "Engineering", "2024-01-10")

	assert.ErrorIs(t, svc.MarkAttendance(ctx, emp.ID, day("2024-01-05"), true), ErrBeforeJoining)
	require.NoError(t, svc.MarkAttendance(ctx, emp.ID, day("2024-01-10"), true))
	assert.ErrorIs(t, svc.MarkAttendance(ctx, emp.ID, day("2024-01-10"), true), ErrDuplicateAttendance)

	rows, err := svc.AttendanceDetails(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-01-10", utils.FormatDate(rows[0].Date))
	assert.Equal(t, models.StatusPresent, rows[0].StatusLabel())
}

func TestEmployeeDetails(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	emp := addEmployee(t, svc, "Engineering", "2024-01-10")
	require.NoError(t, svc.MarkAttendance(ctx, emp.ID, day("2024-01-12"), false))
	require.NoError(t, svc.MarkAttendance(ctx, emp.ID, day("2024-01-11"), true))

	details, err := svc.EmployeeDetails(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, emp.ID, details.Employee.ID)
	require.Len(t, details.Attendance, 2)
	assert.Equal(t, "2024-01-11", utils.FormatDate(details.Attendance[0].Date))

	_, err = svc.EmployeeDetails(ctx, emp.ID+1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.AttendanceDetails(ctx, emp.ID+1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDepartmentReportUsesCache(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	addEmployee(t, svc, "Engineering", "2024-01-10")
	addEmployee(t, svc, "Engineering", "2024-01-11")
	addEmployee(t, svc, "Sales", "2024-01-12")

	want := []models.DepartmentCount{{Department: "Engineering", Count: 2}, {Department: "Sales", Count: 1}}

	rows, err := svc.DepartmentReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, rows)

	rows, err = svc.DepartmentReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, rows)
	assert.Equal(t, 1, store.countCalls)

	addEmployee(t, svc, "Sales", "2024-02-01")
	rows, err = svc.DepartmentReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows[1].Count)
	assert.Equal(t, 2, store.countCalls)
}

func TestDepartmentReportIgnoresRowsReadBeforeAnInsert(t *testing.T) {
	svc, store, cache := newTestService(t)
	ctx := context.Background()
	addEmployee(t, svc, "Sales", "2024-01-10")

	// Another request adds an employee after the counts were read but before
	// they reach the cache.
	cache.beforeStore = func() { addEmployee(t, svc, "Sales", "2024-01-11") }

	rows, err := svc.DepartmentReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.DepartmentCount{{Department: "Sales", Count: 1}}, rows)

	rows, err = svc.DepartmentReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.DepartmentCount{{Department: "Sales", Count: 2}}, rows)
	assert.Equal(t, 2, store.countCalls)

	rows, err = svc.DepartmentReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.DepartmentCount{{Department: "Sales", Count: 2}}, rows)
	assert.Equal(t, 2, store.countCalls)
}

func TestNilCacheFallsBackToNoop(t *testing.T) {
	svc := NewHRService(newFakeStore(), nil, nil)
	rows, err := svc.DepartmentReport(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}
