package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is the transport view of an error, ready for response.Error.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// DetailedError is implemented by errors that carry structured data beyond
// their AppError (for example the available balance on a rejected submit).
type DetailedError interface {
	AppError() *AppError
}

// ToHTTP maps any error to its HTTP representation. Unknown errors never leak
// their message.
func ToHTTP(err error) HTTPError {
	if err == nil {
		return HTTPError{Status: http.StatusOK}
	}

	var detailed DetailedError
	if errors.As(err, &detailed) {
		if appErr := detailed.AppError(); appErr != nil {
			return fromAppError(appErr)
		}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return fromAppError(appErr)
	}

	return fromAppError(ErrInternal)
}

func fromAppError(e *AppError) HTTPError {
	status := e.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return HTTPError{
		Status:  status,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	}
}
