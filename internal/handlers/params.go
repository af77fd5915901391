package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hrms/internal/service"
)

const employeeNotFoundMsg = "Employee not found"

// employeeIDParam reads :employee_id. A non-numeric id is answered with 404,
// the same as an id that matches no employee.
func employeeIDParam(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(strings.TrimSpace(c.Param("employee_id")), 10, 64)
	if err != nil || id64 == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": employeeNotFoundMsg})
		return 0, false
	}
	return uint(id64), true
}

// bodyEmployeeID converts a JSON employee_id. Integers that cannot name a row
// (zero, negative, beyond int64) report ErrEmployeeNotFound; anything that is
// not an integer literal is invalid input.
func bodyEmployeeID(n json.Number) (uint, error) {
	id, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, service.ErrEmployeeNotFound
		}
		return 0, fmt.Errorf("%w: employee_id %q must be an integer", service.ErrInvalidInput, n.String())
	}
	if id <= 0 {
		return 0, service.ErrEmployeeNotFound
	}
	return uint(id), nil
}

func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
