// internal/handlers/attendance.go
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"hrms/internal/export"
	"hrms/internal/service"
	"hrms/internal/utils"
)

type AttendanceHandler struct {
	Svc *service.HRService
}

type MarkAttendanceReq struct {
	EmployeeID *json.Number `json:"employee_id" binding:"required"`
	Date       string       `json:"date" binding:"required"`
	Status     *bool        `json:"status" binding:"required"`
}

type attendanceResp struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

func NewAttendanceHandler(svc *service.HRService) *AttendanceHandler {
	return &AttendanceHandler{Svc: svc}
}

func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	var req MarkAttendanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := bodyEmployeeID(*req.EmployeeID)
	if err == nil {
		err = h.Svc.MarkAttendance(c.Request.Context(), id, date, *req.Status)
	}
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": "Attendance marked successfully"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": employeeNotFoundMsg})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Attendance entry already exists for the given employee and date"})
	case errors.Is(err, service.ErrBeforeJoining):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Attendance cannot be marked before the employee's date of joining"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		internalError(c, err)
	}
}

func (h *AttendanceHandler) AttendanceDetails(c *gin.Context) {
	id, ok := employeeIDParam(c)
	if !ok {
		return
	}

	rows, err := h.Svc.AttendanceDetails(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": employeeNotFoundMsg})
			return
		}
		internalError(c, err)
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No attendance details found for the specified employee"})
		return
	}

	out := make([]attendanceResp, 0, len(rows))
	for _, a := range rows {
		out = append(out, attendanceResp{Date: utils.FormatDate(a.Date), Status: a.StatusLabel()})
	}
	c.JSON(http.StatusOK, gin.H{"attendance_details": out})
}

func (h *AttendanceHandler) ExportAttendance(c *gin.Context) {
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

	var buf bytes.Buffer
	if err := export.Attendance(&buf, details.Employee, details.Attendance); err != nil {
		internalError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=attendance_%d.xlsx", id))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
