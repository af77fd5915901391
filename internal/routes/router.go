// internal/routes/router.go
package routes

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"hrms/internal/handlers"
	"hrms/internal/middleware"
	"hrms/internal/service"
	"hrms/internal/views"
)

type Deps struct {
	Svc    *service.HRService
	Ping   func(ctx context.Context) error
	Logger *slog.Logger
}

func NewRouter(d Deps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(d.Logger))

	tmpl, err := views.Load()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	empH := handlers.NewEmployeeHandler(d.Svc)
	attH := handlers.NewAttendanceHandler(d.Svc)
	pageH := handlers.NewPageHandler(d.Svc)

	r.GET("/health", handlers.Health(d.Ping))

	r.GET("/", pageH.Home)
	r.GET("/employee_report", pageH.EmployeeReport)
	r.GET("/employee_report.xlsx", pageH.EmployeeReportXLSX)
	r.GET("/employee_details/:employee_id", pageH.EmployeeDetails)

	r.POST("/add_employee", empH.AddEmployee)
	r.GET("/view_employees", empH.ViewEmployees)

	r.POST("/mark_attendance", attH.MarkAttendance)
	r.GET("/attendance_details/:employee_id", attH.AttendanceDetails)
	r.GET("/attendance_details/:employee_id/export", attH.ExportAttendance)

	return r, nil
}
