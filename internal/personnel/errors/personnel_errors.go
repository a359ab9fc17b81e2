package personnelerrors

import (
	"net/http"

	"go-leavedesk/internal/shared/apperror"
)

var (
	ErrPersonnelNotFound = apperror.New(
		apperror.CodeNotFound,
		"Personnel not found",
		http.StatusNotFound,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Personnel with the same email already exists",
		http.StatusConflict,
	)
	ErrInvalidPersonnelID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid personnel ID",
		http.StatusBadRequest,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid hire_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
