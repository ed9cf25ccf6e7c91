// Package core holds the error taxonomy shared by finders, commands and results.
package core

import (
	"fmt"
)

// ProtocolError represents a structured error with category and details
type ProtocolError struct {
	Category ErrorCategory
	Code     string                 // Machine-readable code: invalid_key_value_type, missing_key, etc.
	Message  string                 // Human-readable message
	Details  map[string]interface{} // Additional context
	Cause    error                  // Underlying error
}

// Error implements the error interface
func (e *ProtocolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ProtocolError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a ProtocolError with the same code.
// Derived copies (WithMessage, WithDetails...) still match their predefined error.
func (e *ProtocolError) Is(target error) bool {
	t, ok := target.(*ProtocolError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithCause returns a copy of the error with the given cause
func (e *ProtocolError) WithCause(cause error) *ProtocolError {
	return &ProtocolError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  e.Details,
		Cause:    cause,
	}
}

// WithMessage returns a copy of the error with a custom message
func (e *ProtocolError) WithMessage(msg string) *ProtocolError {
	return &ProtocolError{
		Category: e.Category,
		Code:     e.Code,
		Message:  msg,
		Details:  e.Details,
		Cause:    e.Cause,
	}
}

// WithMessagef is WithMessage with fmt formatting
func (e *ProtocolError) WithMessagef(format string, args ...interface{}) *ProtocolError {
	return e.WithMessage(fmt.Sprintf(format, args...))
}

// WithDetails returns a copy of the error with additional details
func (e *ProtocolError) WithDetails(details map[string]interface{}) *ProtocolError {
	merged := make(map[string]interface{})
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &ProtocolError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  merged,
		Cause:    e.Cause,
	}
}

// Predefined errors
var (
	// Validation errors
	ErrInvalidKeyValueType = &ProtocolError{
		Category: ErrCategoryValidation,
		Code:     "invalid_key_value_type",
		Message:  "unsupported key value type",
	}
	ErrInvalidValue = &ProtocolError{
		Category: ErrCategoryValidation,
		Code:     "invalid_value",
		Message:  "invalid field value",
	}

	// Decode errors
	ErrMissingKey = &ProtocolError{
		Category: ErrCategoryDecode,
		Code:     "missing_key",
		Message:  "missing required key",
	}
	ErrMalformedJSON = &ProtocolError{
		Category: ErrCategoryDecode,
		Code:     "malformed_json",
		Message:  "malformed nested JSON",
	}
	ErrUnknownFinderType = &ProtocolError{
		Category: ErrCategoryDecode,
		Code:     "unknown_finder_type",
		Message:  "unknown finder type",
	}
	ErrUnknownCommand = &ProtocolError{
		Category: ErrCategoryDecode,
		Code:     "unknown_command",
		Message:  "unknown command kind",
	}

	// Remote errors
	ErrRemote = &ProtocolError{
		Category: ErrCategoryRemote,
		Code:     "remote_error",
		Message:  "remote endpoint reported an error",
	}

	// Config errors
	ErrInvalidConfig = &ProtocolError{
		Category: ErrCategoryConfig,
		Code:     "invalid_config",
		Message:  "invalid configuration",
	}
)

// InvalidKeyValueType builds the error raised for a key of unsupported type.
func InvalidKeyValueType(typeName string) *ProtocolError {
	return ErrInvalidKeyValueType.
		WithMessagef("unsupported key value type: %s", typeName).
		WithDetails(map[string]interface{}{"type": typeName})
}

// MissingKey builds the error raised when a payload lacks a required key.
func MissingKey(key string) *ProtocolError {
	return ErrMissingKey.
		WithMessagef("missing required key %q", key).
		WithDetails(map[string]interface{}{"key": key})
}
