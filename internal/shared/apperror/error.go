package apperror

import "fmt"

type AppError struct {
	Code       string // Error code (e.g., INVALID_INPUT)
	Message    string // User-friendly message
	HTTPStatus int    // HTTP status code
	Details    any    // Structured payload rendered next to the message (optional)
	Err        error  // Wrapped original error (optional)
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements errors.Unwrap interface for errors.Is/As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError without wrapping
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        nil,
	}
}

// WithDetails returns a copy of e carrying details. The sentinel itself is
// never mutated, so package-level error values stay safe to share.
func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}
