// internal/handlers/employee_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hrms/internal/service"
	"hrms/internal/utils"
)

type EmployeeHandler struct {
	Svc *service.HRService
}

func NewEmployeeHandler(svc *service.HRService) *EmployeeHandler { return &EmployeeHandler{Svc: svc} }

type AddEmployeeReq struct {
	Name          string `json:"name" binding:"required"`
	Designation   string `json:"designation" binding:"required"`
	Department    string `json:"department" binding:"required"`
	DateOfJoining string `json:"date_of_joining" binding:"required"`
}

type employeeResp struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Designation   string `json:"designation"`
	Department    string `json:"department"`
	DateOfJoining string `json:"date_of_joining"`
}

func (h *EmployeeHandler) AddEmployee(c *gin.Context) {
	var req AddEmployeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	joined, err := utils.ParseDate(req.DateOfJoining)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	emp, err := h.Svc.AddEmployee(c.Request.Context(), service.NewEmployee{
		Name:          req.Name,
		Designation:   req.Designation,
		Department:    req.Department,
		DateOfJoining: joined,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Employee added successfully",
		"id":      emp.ID,
	})
}

func (h *EmployeeHandler) ViewEmployees(c *gin.Context) {
	rows, err := h.Svc.ListEmployees(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	out := make([]employeeResp, 0, len(rows))
	for _, e := range rows {
		out = append(out, employeeResp{
			ID:            e.ID,
			Name:          e.Name,
			Designation:   e.Designation,
			Department:    e.Department,
			DateOfJoining: utils.FormatDate(e.DateOfJoining),
		})
	}
	c.JSON(http.StatusOK, out)
}
