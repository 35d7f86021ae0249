package services

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the auth and prediction flows. Handlers map these
// to HTTP responses with errors.Is / errors.As.
var (
	// ErrValidation marks missing, empty or malformed client input.
	ErrValidation = errors.New("validation failed")

	// ErrEmailInUse is the Conflict case of registration.
	ErrEmailInUse = errors.New("email already in use")

	// ErrInvalidCredentials is deliberately identical for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUpstreamUnavailable means the prediction service could not be reached in time.
	ErrUpstreamUnavailable = errors.New("prediction service unreachable")
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries per-field details and matches ErrValidation.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
}

// Is makes errors.Is(err, ErrValidation) true.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UpstreamError is returned when the prediction service answers with a failure status.
type UpstreamError struct {
	StatusCode int
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("prediction service responded with status %d", e.StatusCode)
}
