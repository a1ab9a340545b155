package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/waste_approval_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppErrorUnwrapsToSentinel(t *testing.T) {
	err := fmt.Errorf("assign approver: %w", apperrors.NewDuplicateError("user already assigned"))

	assert.True(t, errors.Is(err, apperrors.ErrDuplicate))
	assert.False(t, errors.Is(err, apperrors.ErrConflict))

	var appErr *apperrors.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Contains(t, err.Error(), "user already assigned")
}

func TestStatusCode(t *testing.T) {
	cases := map[error]int{
		nil:                                      http.StatusOK,
		apperrors.ErrUnauthorized:                http.StatusUnauthorized,
		apperrors.NewForbiddenError("x"):         http.StatusForbidden,
		apperrors.NewNotFoundError("x"):          http.StatusNotFound,
		apperrors.NewValidationFailedError("x"):  http.StatusBadRequest,
		apperrors.NewDuplicateError("x"):         http.StatusConflict,
		apperrors.NewConflictError("x"):          http.StatusConflict,
		apperrors.NewPreconditionFailedError("x"): http.StatusPreconditionFailed,
		errors.New("boom"):                       http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, apperrors.StatusCode(err), "error: %v", err)
	}
}
