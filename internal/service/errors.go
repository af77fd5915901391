package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

var (
	ErrEmployeeNotFound    = fmt.Errorf("%w: employee not found", ErrNotFound)
	ErrDuplicateAttendance = fmt.Errorf("%w: attendance entry already exists for the given employee and date", ErrConflict)
	ErrBeforeJoining       = fmt.Errorf("%w: attendance cannot be marked before the employee's date of joining", ErrInvalidInput)
)
