package leaveerrors

import (
	"errors"
	"fmt"
	"net/http"

	"go-leavedesk/internal/shared/apperror"
)

// CodeGenderMismatch lets callers branch on the mismatch without parsing
// the message, which carries the required gender for the UI.
const CodeGenderMismatch = "GENDER_MISMATCH"

var (
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"Leave type does not exist or is not event-based",
		http.StatusUnprocessableEntity,
	)
	ErrPersonnelNotFound = apperror.New(
		apperror.CodeNotFound,
		"Personnel not found",
		http.StatusNotFound,
	)
	ErrNotEligible = apperror.New(
		apperror.CodeInvalidState,
		"Personnel is not eligible for this leave type",
		http.StatusUnprocessableEntity,
	)
	ErrLeaveRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidLeaveRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave request ID",
		http.StatusBadRequest,
	)
	ErrInvalidStartDate = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be a valid date in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeInvalidState,
		"Leave request has already been decided",
		http.StatusConflict,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection_reason is required when rejecting a request",
		http.StatusBadRequest,
	)
)

// NewGenderMismatch reports that the leave type is restricted to the given
// gender. The required gender is part of the message shown to the user.
func NewGenderMismatch(requiredGender string) *apperror.AppError {
	return apperror.New(
		CodeGenderMismatch,
		fmt.Sprintf("This leave type is only available to %s personnel", requiredGender),
		http.StatusUnprocessableEntity,
	)
}

func IsGenderMismatch(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code == CodeGenderMismatch
}
