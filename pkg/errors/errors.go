package errors

import (
	"errors"
	"fmt"
	"syscall"
)

// Error types for classifying failures of limit queries and updates

// ErrorType represents different categories of errors
type ErrorType string

const (
	// ErrorTypeInvalidArgument means the caller violated the shape of a call
	ErrorTypeInvalidArgument ErrorType = "invalid_argument"
	// ErrorTypeUnknownResource means the resource name is not in the registry
	ErrorTypeUnknownResource ErrorType = "unknown_resource"
	// ErrorTypeSystem means the kernel rejected a getrlimit/setrlimit call
	ErrorTypeSystem ErrorType = "system"

	ErrorTypeValidation  ErrorType = "validation"
	ErrorTypeIO          ErrorType = "io"
	ErrorTypeUnsupported ErrorType = "unsupported"
	ErrorTypeInternal    ErrorType = "internal"
)

// DomainError represents a structured error with type and context
type DomainError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *DomainError) Is(target error) bool {
	if other, ok := target.(*DomainError); ok {
		return e.Type == other.Type
	}
	return false
}

// WithContext adds context information to the error
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(errorType ErrorType, message string, cause error) *DomainError {
	return &DomainError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Caller errors
func NewInvalidArgumentError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeInvalidArgument, message, cause)
}

func NewUnknownResourceError(name string) *DomainError {
	return NewDomainError(ErrorTypeUnknownResource, fmt.Sprintf("unknown resource name %q", name), nil).
		WithContext("resource", name)
}

// NewSystemError wraps a failed kernel call. The errno, when the cause carries
// one, stays reachable through errors.As and Errno.
func NewSystemError(call string, cause error) *DomainError {
	err := NewDomainError(ErrorTypeSystem, call+" failed", cause).WithContext("call", call)
	if errno, ok := Errno(cause); ok {
		err.WithContext("errno", int(errno))
	}
	return err
}

func NewValidationError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeValidation, message, cause)
}

func NewIOError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeIO, message, cause)
}

func NewUnsupportedError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeUnsupported, message, cause)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewDomainError(ErrorTypeInternal, message, cause)
}

// Error checking helpers
func IsInvalidArgumentError(err error) bool {
	return isType(err, ErrorTypeInvalidArgument)
}

func IsUnknownResourceError(err error) bool {
	return isType(err, ErrorTypeUnknownResource)
}

func IsSystemError(err error) bool {
	return isType(err, ErrorTypeSystem)
}

func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

func IsIOError(err error) bool {
	return isType(err, ErrorTypeIO)
}

func IsUnsupportedError(err error) bool {
	return isType(err, ErrorTypeUnsupported)
}

func IsInternalError(err error) bool {
	return isType(err, ErrorTypeInternal)
}

// isType matches any DomainError in the tree, including every member of an
// ErrorCollection.
func isType(err error, errorType ErrorType) bool {
	return errors.Is(err, &DomainError{Type: errorType})
}

// Errno returns the OS error number carried anywhere in the chain of err.
func Errno(err error) (syscall.Errno, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno, true
	}
	return 0, false
}

// Error aggregation for bulk operations
type ErrorCollection struct {
	Errors []error
}

func (e *ErrorCollection) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors occurred: %v", len(e.Errors), e.Errors[0])
}

func (e *ErrorCollection) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

func (e *ErrorCollection) HasErrors() bool {
	return len(e.Errors) > 0
}

func (e *ErrorCollection) ToError() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *ErrorCollection) Unwrap() []error {
	return e.Errors
}

// NewErrorCollection creates a new error collection
func NewErrorCollection() *ErrorCollection {
	return &ErrorCollection{
		Errors: make([]error, 0),
	}
}
