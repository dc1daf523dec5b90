package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-leave/internal/shared/apperror"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type balanceError struct{ available int }

func (e balanceError) Error() string { return "insufficient" }

func (e balanceError) AppError() *apperror.AppError {
	return apperror.New(apperror.CodeUnprocessable, "insufficient", http.StatusUnprocessableEntity).
		WithDetails(map[string]int{"available": e.available})
}

func TestToHTTP(t *testing.T) {
	sentinel := apperror.New(apperror.CodeNotFound, "leave request not found", http.StatusNotFound)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"app error", sentinel, http.StatusNotFound, apperror.CodeNotFound, "leave request not found"},
		{"wrapped app error", fmt.Errorf("repo: %w", sentinel), http.StatusNotFound, apperror.CodeNotFound, "leave request not found"},
		{"detailed error", balanceError{available: 2}, http.StatusUnprocessableEntity, apperror.CodeUnprocessable, "insufficient"},
		{"unknown error hides message", errors.New("pq: connection refused"), http.StatusInternalServerError, apperror.CodeInternalError, apperror.ErrInternal.Message},
		{"zero status falls back to 500", apperror.New("X", "x", 0), http.StatusInternalServerError, "X", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apperror.ToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}

	assert.Equal(t, map[string]int{"available": 2}, apperror.ToHTTP(balanceError{available: 2}).Details)
}

func TestWithDetails_DoesNotMutateSentinel(t *testing.T) {
	withDetails := apperror.ErrForbidden.WithDetails("leave:approve")

	assert.Nil(t, apperror.ErrForbidden.Details)
	assert.Equal(t, "leave:approve", withDetails.Details)
	assert.Equal(t, apperror.ErrForbidden.Code, withDetails.Code)
}

type loginPayload struct {
	Email     string `json:"email" binding:"required"`
	StartDate string `json:"start_date" binding:"required,len=10"`
}

func TestMapValidationError(t *testing.T) {
	apperror.Init()

	err := binding.Validator.ValidateStruct(loginPayload{StartDate: "2025-11-15"})
	mapped := apperror.ToHTTP(apperror.MapValidationError(err))
	assert.Equal(t, http.StatusBadRequest, mapped.Status)
	assert.Equal(t, "Email is required", mapped.Message)

	err = binding.Validator.ValidateStruct(loginPayload{Email: "a@b.c", StartDate: "15-11"})
	mapped = apperror.ToHTTP(apperror.MapValidationError(err))
	assert.Equal(t, "Start Date is invalid", mapped.Message)

	assert.Equal(t, apperror.ErrInvalidInput, apperror.MapValidationError(errors.New("EOF")))
}

type pageQuery struct {
	PageSize int    `form:"page_size" binding:"min=1"`
	Status   string `form:"status" binding:"required"`
	Internal string `json:"-" form:"internal" binding:"required"`
}

func TestMapValidationError_QueryFields(t *testing.T) {
	apperror.Init()

	t.Run("form tag names the field", func(t *testing.T) {
		err := binding.Validator.ValidateStruct(pageQuery{Status: "pending", Internal: "x"})
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		assert.Equal(t, http.StatusBadRequest, mapped.Status)
		assert.Equal(t, "Page Size is invalid", mapped.Message)
	})

	t.Run("required query field", func(t *testing.T) {
		err := binding.Validator.ValidateStruct(pageQuery{PageSize: 10, Internal: "x"})
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		assert.Equal(t, "Status is required", mapped.Message)
	})

	t.Run("json dash hides the form name", func(t *testing.T) {
		err := binding.Validator.ValidateStruct(pageQuery{PageSize: 10, Status: "pending"})
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		assert.Equal(t, "Internal is required", mapped.Message)
	})
}
