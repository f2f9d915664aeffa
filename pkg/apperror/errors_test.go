package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "wrapped not found", err: fmt.Errorf("job not found: %w", ErrNotFound), expected: http.StatusNotFound},
		{name: "forbidden", err: ErrForbidden, expected: http.StatusForbidden},
		{name: "conflict", err: fmt.Errorf("slug taken: %w", ErrConflict), expected: http.StatusConflict},
		{name: "app error code wins", err: New(http.StatusForbidden, "nope", ErrBadRequest), expected: http.StatusForbidden},
		{name: "validation error", err: Invalid("All fields are required.", nil), expected: http.StatusBadRequest},
		{name: "validation error with conflict", err: &ValidationError{Message: "retry", Err: ErrConflict}, expected: http.StatusConflict},
		{name: "unknown", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapErrorToStatus(tt.err))
		})
	}
}

func TestAppErrorMessage(t *testing.T) {
	err := New(http.StatusBadRequest, "Please upload your resume.", ErrInvalidInput)
	assert.Equal(t, "Please upload your resume.", err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)
}
