package leaveerrors

import (
	"fmt"
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrMissingReason = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeUnprocessable,
		"insufficient leave balance",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave status",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrLeaveIDTaken = apperror.New(
		apperror.CodeConflict,
		"leave request id already exists",
		http.StatusConflict,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"leave request has already been decided",
		http.StatusConflict,
	)
	ErrForbiddenLeaveAccess = apperror.New(
		apperror.CodeForbidden,
		"you can only view your own leave requests",
		http.StatusForbidden,
	)
)

// InsufficientBalanceError reports a submission that asks for more days than
// the employee has left. errors.Is(err, ErrInsufficientBalance) holds.
type InsufficientBalanceError struct {
	Available int
	Requested int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient leave balance: %d day(s) available, %d requested", e.Available, e.Requested)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

func (e *InsufficientBalanceError) AppError() *apperror.AppError {
	appErr := ErrInsufficientBalance.WithDetails(map[string]int{
		"available": e.Available,
		"requested": e.Requested,
	})
	appErr.Message = fmt.Sprintf("insufficient leave balance: only %d day(s) available", e.Available)
	return appErr
}
