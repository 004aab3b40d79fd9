package ecode

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when no task has the requested id.
var ErrNotFound = errors.New(NotExist("task"))

// ValidationError reports input rejected before any network call.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RequestFailed reports an error status returned by the server.
type RequestFailed struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *RequestFailed) Error() string {
	return e.Message
}

// HTTPErrorMessage is the message used when an error response carries no payload.
func HTTPErrorMessage(status int) string {
	return fmt.Sprintf("HTTP error, status %d", status)
}

// TransportError reports a request that did not complete or a body that could not be decoded.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsRequestFailed reports whether err is or wraps a RequestFailed.
func IsRequestFailed(err error) bool {
	var target *RequestFailed
	return errors.As(err, &target)
}

// IsTransport reports whether err is or wraps a TransportError.
func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}
