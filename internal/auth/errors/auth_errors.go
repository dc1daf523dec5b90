package autherrors

import (
	"go-leave/internal/shared/apperror"
	"net/http"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid email or password",
		http.StatusUnauthorized,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to issue access token",
		http.StatusInternalServerError,
	)
	ErrUnknownHasher = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown password hasher",
		http.StatusBadRequest,
	)
)
