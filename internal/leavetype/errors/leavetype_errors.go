package leavetypeerrors

import (
	"net/http"

	"go-leavedesk/internal/shared/apperror"
)

var (
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave type not found",
		http.StatusNotFound,
	)
	ErrNameAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Leave type with the same name already exists",
		http.StatusConflict,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave type ID",
		http.StatusBadRequest,
	)
	ErrInvalidMaxDays = apperror.New(
		apperror.CodeInvalidInput,
		"max_days must be at least 1",
		http.StatusBadRequest,
	)
)
