package domain

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Custom error types for the enrollment client and its stub service

// ValidationError represents validation failures
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ConflictError represents resource conflict (e.g., duplicate email)
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Message)
}

// NotFoundError represents missing resource
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Message)
}

// InternalError represents unexpected server errors
type InternalError struct {
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("internal error: %s - %v", e.Message, e.Err)
	}
	return fmt.Sprintf("internal error: %s", e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// TransportError represents a remote call that could not be completed
type TransportError struct {
	Method string
	Code   codes.Code
	Err    error
}

// NewTransportError wraps err from a call to method, keeping its gRPC code.
// An err that already is a TransportError is returned as is.
func NewTransportError(method string, err error) *TransportError {
	var te *TransportError
	if errors.As(err, &te) {
		return te
	}
	code := codes.Unknown
	if st, ok := status.FromError(err); ok {
		code = st.Code()
	}
	return &TransportError{Method: method, Code: code, Err: err}
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s (%s): %v", e.Method, e.Code, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// EnrollmentError represents a failed enrollment carrying the underlying cause
type EnrollmentError struct {
	UserName string
	Err      error
}

func (e *EnrollmentError) Error() string {
	return fmt.Sprintf("enroll user %q: %v", e.UserName, e.Err)
}

func (e *EnrollmentError) Unwrap() error {
	return e.Err
}

// IsConflict checks if an error is a ConflictError
func IsConflict(err error) bool {
	_, ok := err.(*ConflictError)
	return ok
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// IsTransport checks if an error is or wraps a TransportError
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsEnrollment checks if an error is or wraps an EnrollmentError
func IsEnrollment(err error) bool {
	var target *EnrollmentError
	return errors.As(err, &target)
}
