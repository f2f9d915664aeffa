package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type jobForm struct {
	Title    string `validate:"required,max=255"`
	MinOffer int    `validate:"min=0"`
	MaxOffer int    `validate:"gtefield=MinOffer"`
}

func TestFormatValidationError(t *testing.T) {
	err := validator.New().Struct(jobForm{MinOffer: 10, MaxOffer: 5})

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "Title is required")
	assert.Contains(t, msg, "Maximum offer must be greater than or equal to Minimum offer")
}

func TestFormatValidationErrorPassesThroughOtherErrors(t *testing.T) {
	assert.Equal(t, "boom", FormatValidationError(errors.New("boom")))
}

func TestVar(t *testing.T) {
	assert.True(t, Var("alice@example.com", "email"))
	assert.False(t, Var("alice@", "email"))
	assert.True(t, Var("alice42", "alphanum"))
	assert.False(t, Var("alice_42", "alphanum"))
}
