package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"Internal server error",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrTooManyRequests = New(
		CodeTooMany,
		"Too many requests",
		http.StatusTooManyRequests,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, field+" is required", http.StatusBadRequest)
}

func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, field+" is invalid", http.StatusBadRequest)
}
