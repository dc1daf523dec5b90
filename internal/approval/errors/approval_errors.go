package approvalerrors

import (
	"net/http"

	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/shared/apperror"
)

var (
	// ErrAlreadyDecided is shared with the ledger, whose conditional update
	// is what detects it.
	ErrAlreadyDecided = leaveerrors.ErrAlreadyDecided

	ErrUnauthorizedDecider = apperror.New(
		apperror.CodeForbidden,
		"only managers can approve or reject leave requests",
		http.StatusForbidden,
	)
	ErrInvalidOutcome = apperror.New(
		apperror.CodeInvalidInput,
		"outcome must be APPROVED or REJECTED",
		http.StatusBadRequest,
	)
)
