package apperror_test

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-leavedesk/internal/shared/apperror"
)

func TestToHTTP_AppError(t *testing.T) {
	appErr := apperror.New(apperror.CodeNotFound, "Leave type not found", http.StatusNotFound)

	httpErr := apperror.ToHTTP(appErr)

	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, apperror.CodeNotFound, httpErr.Code)
	assert.Equal(t, "Leave type not found", httpErr.Message)
}

func TestToHTTP_WrappedAppError(t *testing.T) {
	cause := errors.New("row scan failed")
	appErr := apperror.Wrap(cause, apperror.CodeInternalError, "Internal server error", http.StatusInternalServerError)

	httpErr := apperror.ToHTTP(appErr)

	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.ErrorIs(t, appErr, cause)
}

func TestToHTTP_UnknownErrorIsOpaque(t *testing.T) {
	httpErr := apperror.ToHTTP(errors.New("pq: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "INTERNAL_ERROR", httpErr.Code)
	assert.NotContains(t, httpErr.Message, "pq:")
}

func TestMapValidationError(t *testing.T) {
	type form struct {
		StartDate string `json:"start_date" validate:"required"`
		Email     string `json:"email" validate:"omitempty,email"`
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	err := v.Struct(form{})
	require.Error(t, err)

	mapped := apperror.MapValidationError(err)
	var appErr *apperror.AppError
	require.ErrorAs(t, mapped, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Contains(t, appErr.Message, "Start Date")
}

func TestMapValidationError_NonValidatorError(t *testing.T) {
	mapped := apperror.MapValidationError(errors.New("unexpected EOF"))

	var appErr *apperror.AppError
	require.ErrorAs(t, mapped, &appErr)
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}
