package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError(ErrNoTextProvided)

	assert.EqualError(t, err, "No text provided")
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrInference)
}

func TestInferenceError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInferenceError(fmt.Errorf("calling engine: %w", cause))

	assert.EqualError(t, err, "calling engine: connection refused")
	assert.ErrorIs(t, err, ErrInference)
	assert.ErrorIs(t, err, cause)

	var ie *InferenceError
	assert.True(t, errors.As(err, &ie))

	// Already classified errors are not wrapped twice.
	assert.Same(t, err, NewInferenceError(err))
}

func TestAdjacent(t *testing.T) {
	a := EntitySpan{Start: 0, End: 4}
	assert.True(t, a.Adjacent(EntitySpan{Start: 4, End: 8}))
	assert.False(t, a.Adjacent(EntitySpan{Start: 5, End: 8}))
}
