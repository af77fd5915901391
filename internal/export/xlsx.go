package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"hrms/internal/models"
	"hrms/internal/utils"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DepartmentReport writes a one-sheet workbook of employee counts per department.
func DepartmentReport(w io.Writer, rows []models.DepartmentCount) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Departments"
	if err := useSheet(f, sheet, []string{"Department", "Employees"}); err != nil {
		return err
	}

	var total int64
	for i, r := range rows {
		row := i + 2
		if err := setRow(f, sheet, row, r.Department, r.Count); err != nil {
			return err
		}
		total += r.Count
	}
	if err := setRow(f, sheet, len(rows)+2, "Total", total); err != nil {
		return err
	}

	return f.Write(w)
}

// Attendance writes the attendance history of one employee.
func Attendance(w io.Writer, emp models.Employee, rows []models.Attendance) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	if err := useSheet(f, sheet, []string{"Employee ID", "Name", "Department", "Date", "Status"}); err != nil {
		return err
	}

	for i, a := range rows {
		if err := setRow(f, sheet, i+2,
			emp.ID, emp.Name, emp.Department, utils.FormatDate(a.Date), a.StatusLabel(),
		); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// useSheet renames the default sheet and writes the header row.
func useSheet(f *excelize.File, name string, headers []string) error {
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	values := make([]any, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	return setRow(f, name, 1, values...)
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}
