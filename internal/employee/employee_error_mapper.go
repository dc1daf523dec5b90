package employee

import (
	"errors"
	"strings"

	employeeerrors "go-leave/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_employee_email":
				return employeeerrors.ErrEmployeeAlreadyExists
			case "employees_pkey":
				return employeeerrors.ErrEmployeeIDTaken
			}
		}
	}

	// sqlite reports constraint failures as plain text
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "unique constraint failed") && strings.Contains(errMsg, "employees.email") {
		return employeeerrors.ErrEmployeeAlreadyExists
	}
	if strings.Contains(errMsg, "unique constraint failed") && strings.Contains(errMsg, "employees.id") {
		return employeeerrors.ErrEmployeeIDTaken
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employee_email") {
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	return err
}
