package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	t.Run("without violations", func(t *testing.T) {
		err := NewDomainError("NOT_FOUND", "Resource not found")
		assert.Equal(t, "Resource not found", err.Error())
	})

	t.Run("with violations", func(t *testing.T) {
		err := NewValidationError("INVALID_DOCUMENT", "Invalid document", []FieldViolation{
			{Field: "number", Message: "is required"},
			{Field: "items[0].no", Message: "must be positive"},
		})
		assert.Equal(t, "Invalid document (number: is required; items[0].no: must be positive)", err.Error())
	})
}

func TestDomainError_Is(t *testing.T) {
	err := NewValidationError("INVALID_INPUT", "bad", []FieldViolation{{Field: "x", Message: "y"}})
	wrapped := fmt.Errorf("building: %w", err)

	assert.True(t, errors.Is(wrapped, ErrInvalidInput))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, errors.New("INVALID_INPUT")))
}
