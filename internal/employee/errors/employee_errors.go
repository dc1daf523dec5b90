package employeeerrors

import (
	"go-leave/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrEmployeeIDTaken = apperror.New(
		apperror.CodeConflict,
		"Employee id already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid role",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveDays = apperror.New(
		apperror.CodeInvalidInput,
		"Leave days must be positive",
		http.StatusBadRequest,
	)
)
