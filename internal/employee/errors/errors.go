package employeeerrors

import (
	"net/http"

	"go-roster/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same ID already exists",
		http.StatusConflict,
	)
	ErrDuplicateIDsInInput = apperror.New(
		apperror.CodeConflict,
		"Duplicate employee IDs in the input set",
		http.StatusConflict,
	)
	ErrNoValidRecords = apperror.New(
		apperror.CodeInvalidInput,
		"No valid employee records in the input",
		http.StatusBadRequest,
	)
	ErrMissingEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Employee ID is required",
		http.StatusBadRequest,
	)
)
