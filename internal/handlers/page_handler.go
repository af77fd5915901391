package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hrms/internal/export"
	"hrms/internal/service"
)

// PageHandler renders the HTML views loaded into the engine by routes.NewRouter.
type PageHandler struct {
	Svc *service.HRService
}

func NewPageHandler(svc *service.HRService) *PageHandler { return &PageHandler{Svc: svc} }

func (h *PageHandler) Home(c *gin.Context) {
	rows, err := h.Svc.ListEmployees(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.HTML(http.StatusOK, "home.html", gin.H{"Employees": rows})
}

func (h *PageHandler) EmployeeReport(c *gin.Context) {
	counts, err := h.Svc.DepartmentReport(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.HTML(http.StatusOK, "employee_report.html", gin.H{"DepartmentCounts": counts})
}

func (h *PageHandler) EmployeeReportXLSX(c *gin.Context) {
	counts, err := h.Svc.DepartmentReport(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.DepartmentReport(&buf, counts); err != nil {
		internalError(c, err)
		return
	}
	fileName := fmt.Sprintf("employee_report_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

func (h *PageHandler) EmployeeDetails(c *gin.Context) {
	id, ok := employeeIDParam(c)
	if !ok {
		return
	}

	details, err := h.Svc.EmployeeDetails(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": employeeNotFoundMsg})
			return
		}
		internalError(c, err)
		return
	}
	c.HTML(http.StatusOK, "employee_details.html", gin.H{
		"Employee":   details.Employee,
		"Attendance": details.Attendance,
	})
}
