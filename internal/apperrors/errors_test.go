package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidation("text", "is required")

	assert.Equal(t, "text: is required", err.Error())
	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsPersistence(err))
}

func TestValidationError_NoField(t *testing.T) {
	err := NewValidation("", "base and target language must differ")

	assert.Equal(t, "base and target language must differ", err.Error())
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		expected string
	}{
		{
			name:     "with id",
			err:      NewNotFound("sentence", 42),
			expected: "sentence 42 not found",
		},
		{
			name:     "without id",
			err:      NewNotFound("translation", 0),
			expected: "translation not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.True(t, IsNotFound(tt.err))
			assert.False(t, IsValidation(tt.err))
		})
	}
}

func TestPersistenceError_Unwrap(t *testing.T) {
	cause := errors.New("driver: bad connection")
	err := NewPersistence("create sentence pair", cause)

	assert.True(t, IsPersistence(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "create sentence pair")
}

func TestClassification_Wrapped(t *testing.T) {
	// classification must survive %w wrapping up the call stack
	inner := NewNotFound("word", 7)
	wrapped := fmt.Errorf("failed to resolve pair: %w", inner)

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsPersistence(wrapped))
}
