package models

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrInference  = errors.New("inference failed")
)

const ErrNoTextProvided = "No text provided"

// ValidationError is returned when caller supplied input is missing or unusable.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InferenceError wraps a failure of the inference engine or of its output.
type InferenceError struct {
	Detail string
	Err    error
}

func (e *InferenceError) Error() string {
	return e.Detail
}

func (e *InferenceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInference}
	}
	return []error{ErrInference, e.Err}
}

// NewInferenceError builds an InferenceError whose detail is derived from err.
func NewInferenceError(err error) error {
	var ie *InferenceError
	if errors.As(err, &ie) {
		return err
	}
	return &InferenceError{Detail: err.Error(), Err: err}
}
