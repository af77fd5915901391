package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"hrms/internal/models"
	"hrms/internal/storage"
)

type attendanceKey struct {
	employeeID uint
	day        string
}

// fakeStore is an in-memory TxManager that also counts repository calls.
type fakeStore struct {
	mu         sync.Mutex
	nextID     uint
	employees  map[uint]models.Employee
	attendance map[attendanceKey]models.Attendance

	lockCalls   int
	existsCalls int
	createCalls int
	countCalls  int

	// raceOnCreate makes Create report a duplicate even though Exists said no.
	raceOnCreate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees:  map[uint]models.Employee{},
		attendance: map[attendanceKey]models.Attendance{},
	}
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context, repos storage.Repositories) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx, storage.Repositories{Employees: fakeEmployees{f}, Attendance: fakeAttendance{f}})
}

type fakeEmployees struct{ f *fakeStore }

func (r fakeEmployees) Create(_ context.Context, emp *models.Employee) error {
	r.f.nextID++
	emp.ID = r.f.nextID
	r.f.employees[emp.ID] = *emp
	return nil
}

func (r fakeEmployees) GetByID(_ context.Context, id uint) (*models.Employee, error) {
	emp, ok := r.f.employees[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &emp, nil
}

func (r fakeEmployees) LockByID(ctx context.Context, id uint) (*models.Employee, error) {
	r.f.lockCalls++
	return r.GetByID(ctx, id)
}

func (r fakeEmployees) List(context.Context) ([]models.Employee, error) {
	out := make([]models.Employee, 0, len(r.f.employees))
	for _, e := range r.f.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeEmployees) CountByDepartment(context.Context) ([]models.DepartmentCount, error) {
	r.f.countCalls++
	counts := map[string]int64{}
	for _, e := range r.f.employees {
		counts[e.Department]++
	}
	out := make([]models.DepartmentCount, 0, len(counts))
	for d, n := range counts {
		out = append(out, models.DepartmentCount{Department: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out, nil
}

type fakeAttendance struct{ f *fakeStore }

func key(id uint, d time.Time) attendanceKey { return attendanceKey{id, d.Format("2006-01-02")} }

func (r fakeAttendance) Exists(_ context.Context, employeeID uint, date time.Time) (bool, error) {
	r.f.existsCalls++
	_, ok := r.f.attendance[key(employeeID, date)]
	return ok, nil
}

func (r fakeAttendance) Create(_ context.Context, row *models.Attendance) error {
	r.f.createCalls++
	k := key(row.EmployeeID, row.Date)
	if _, ok := r.f.attendance[k]; ok || r.f.raceOnCreate {
		return storage.ErrDuplicate
	}
	r.f.attendance[k] = *row
	return nil
}

func (r fakeAttendance) ListByEmployee(_ context.Context, employeeID uint) ([]models.Attendance, error) {
	var out []models.Attendance
	for _, a := range r.f.attendance {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// mapCache keeps one report per generation, the way the redis cache does.
type mapCache struct {
	gen         int64
	reports     map[int64][]models.DepartmentCount
	invalidated int
	// beforeStore runs once, just before the next StoreDepartmentReport.
	beforeStore func()
}

func (c *mapCache) DepartmentReport(context.Context) ([]models.DepartmentCount, int64, bool) {
	rows, ok := c.reports[c.gen]
	return rows, c.gen, ok
}

func (c *mapCache) StoreDepartmentReport(_ context.Context, gen int64, rows []models.DepartmentCount) {
	if hook := c.beforeStore; hook != nil {
		c.beforeStore = nil
		hook()
	}
	if gen != c.gen {
		return
	}
	if c.reports == nil {
		c.reports = map[int64][]models.DepartmentCount{}
	}
	c.reports[gen] = rows
}

func (c *mapCache) InvalidateDepartmentReport(context.Context) {
	c.gen++
	c.invalidated++
}
