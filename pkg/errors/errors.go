package errors

import (
	"errors"
	"fmt"
)

// Common error types
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that invalid input was provided
	ErrInvalidInput = errors.New("invalid input")

	// ErrExternalService indicates an error with an external service
	ErrExternalService = errors.New("external service error")

	// ErrDispatchFailed indicates that the outbound notification could not be delivered
	ErrDispatchFailed = errors.New("notification dispatch failed")

	// ErrPersistence indicates that the notification ledger could not be written
	ErrPersistence = errors.New("ledger persistence failed")
)

// ServiceError represents a service-level error with additional context
type ServiceError struct {
	Op      string // Operation that failed
	Service string // Service where the error occurred
	Err     error  // Underlying error
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Service, e.Op, e.Err)
}

// Unwrap allows errors.Is and errors.As to work
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError
func NewServiceError(service, op string, err error) *ServiceError {
	return &ServiceError{
		Service: service,
		Op:      op,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
