package employee

import (
	"errors"
	"net/http"

	employeeerrors "go-roster/internal/employee/errors"
	"go-roster/internal/shared/apperror"
	"go-roster/internal/sheetstore"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sheetstore.ErrRowNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	if errors.Is(err, sheetstore.ErrDuplicateKey) {
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	return apperror.Wrap(err, apperror.CodeStoreError,
		"The roster workbook could not be read or written",
		http.StatusInternalServerError,
	)
}

func duplicateIDError(empID string, index int) error {
	return employeeerrors.ErrDuplicateIDsInInput.WithDetails(map[string]any{
		"empId": empID,
		"index": index,
	})
}

func noValidRecordsError(skipped []RecordError) error {
	return employeeerrors.ErrNoValidRecords.WithDetails(skipped)
}
