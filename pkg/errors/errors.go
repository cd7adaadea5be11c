// Package errors provides the structured error type used across sggit.
//
// Every error that crosses a package boundary carries an ErrorCode so that
// callers (and tests) can branch on the category of failure without parsing
// messages. The codes map onto the failure taxonomy of the tool:
// configuration, path policy, I/O, version control and lookup failures.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors (mapping store, settings, app config)
	ErrConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigParse      ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrSettingsNotFound ErrorCode = "SETTINGS_NOT_FOUND"

	// Path policy errors
	ErrPathPolicy ErrorCode = "PATH_POLICY"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
	ErrCopy         ErrorCode = "COPY"

	// Version control errors
	ErrVCS         ErrorCode = "VCS"
	ErrVCSNotARepo ErrorCode = "VCS_NOT_A_REPO"
)

// SggitError represents a structured error with code and details
type SggitError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SggitError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SggitError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SggitError) Is(target error) bool {
	var targetErr *SggitError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SggitError with the given code and message
func New(code ErrorCode, message string) *SggitError {
	return &SggitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SggitError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SggitError {
	return &SggitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SggitError
func Wrap(err error, code ErrorCode, message string) *SggitError {
	if err == nil {
		return nil
	}
	return &SggitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SggitError {
	if err == nil {
		return nil
	}
	return &SggitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SggitError) WithDetail(key string, value interface{}) *SggitError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code.
// The outermost SggitError in the chain decides.
func IsErrorCode(err error, code ErrorCode) bool {
	var sggitErr *SggitError
	if errors.As(err, &sggitErr) {
		return sggitErr.Code == code
	}
	return false
}

// HasErrorCode reports whether any SggitError in the chain carries code.
func HasErrorCode(err error, code ErrorCode) bool {
	return errors.Is(err, &SggitError{Code: code})
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SggitError
func GetErrorCode(err error) ErrorCode {
	var sggitErr *SggitError
	if errors.As(err, &sggitErr) {
		return sggitErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SggitError
func GetErrorDetails(err error) map[string]interface{} {
	var sggitErr *SggitError
	if errors.As(err, &sggitErr) {
		return sggitErr.Details
	}
	return nil
}
