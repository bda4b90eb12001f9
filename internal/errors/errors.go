package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeSchema          ErrorType = "SCHEMA"
	ErrTypeDateParse       ErrorType = "DATE_PARSE"
	ErrTypeDegenerateInput ErrorType = "DEGENERATE_INPUT"
	ErrTypeWrite           ErrorType = "WRITE"
	ErrTypeConfig          ErrorType = "CONFIG"
	ErrTypeNotFound        ErrorType = "NOT_FOUND"
	ErrTypeValidation      ErrorType = "VALIDATION"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// NewSchemaError creates a fatal schema error (missing or mistyped column)
func NewSchemaError(message string, cause error) *AppError {
	return NewAppError(ErrTypeSchema, message, cause)
}

// NewDateParseError creates a non-fatal date parse error
func NewDateParseError(message string, cause error) *AppError {
	return NewAppError(ErrTypeDateParse, message, cause)
}

// NewDegenerateInputError creates a degenerate input error
func NewDegenerateInputError(message string, cause error) *AppError {
	return NewAppError(ErrTypeDegenerateInput, message, cause)
}

// NewWriteError creates a write error for a single output artifact
func NewWriteError(artifact string, cause error) *AppError {
	return NewAppError(ErrTypeWrite, fmt.Sprintf("failed to write %s", artifact), cause).
		WithContext("artifact", artifact)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}
