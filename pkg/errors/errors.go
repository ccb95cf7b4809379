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
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrNoConfig     ErrorCode = "NO_CONFIG"
	ErrNoExtractors ErrorCode = "NO_EXTRACTORS"
	ErrNoProfiles   ErrorCode = "NO_PROFILES"
	ErrNoTemp       ErrorCode = "NO_TEMP"
	ErrNoArchives   ErrorCode = "NO_ARCHIVES"
	ErrConfigLoad   ErrorCode = "CONFIG_LOAD"
	ErrConfigParse  ErrorCode = "CONFIG_PARSE"

	// Template errors
	ErrMissingKey       ErrorCode = "MISSING_KEY"
	ErrUnsupportedValue ErrorCode = "UNSUPPORTED_VALUE"
	ErrTemplateParse    ErrorCode = "TEMPLATE_PARSE"
	ErrTemplateEval     ErrorCode = "TEMPLATE_EVAL"

	// Catalog errors
	ErrPatternInvalid    ErrorCode = "PATTERN_INVALID"
	ErrExtractorNotFound ErrorCode = "EXTRACTOR_NOT_FOUND"
	ErrProfileNotFound   ErrorCode = "PROFILE_NOT_FOUND"
	ErrNoExecutables     ErrorCode = "NO_EXECUTABLES"
	ErrSelection         ErrorCode = "SELECTION"

	// Execution errors
	ErrExtractFailed  ErrorCode = "EXTRACT_FAILED"
	ErrCommandExecute ErrorCode = "COMMAND_EXECUTE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// RxrError represents a structured error with code and details
type RxrError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RxrError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RxrError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RxrError) Is(target error) bool {
	var targetErr *RxrError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RxrError with the given code and message
func New(code ErrorCode, message string) *RxrError {
	return &RxrError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RxrError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RxrError {
	return &RxrError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RxrError
func Wrap(err error, code ErrorCode, message string) *RxrError {
	if err == nil {
		return nil
	}
	return &RxrError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RxrError {
	if err == nil {
		return nil
	}
	return &RxrError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RxrError) WithDetail(key string, value interface{}) *RxrError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var rxrErr *RxrError
	if errors.As(err, &rxrErr) {
		return rxrErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RxrError
func GetErrorCode(err error) ErrorCode {
	var rxrErr *RxrError
	if errors.As(err, &rxrErr) {
		return rxrErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a RxrError
func GetErrorDetails(err error) map[string]interface{} {
	var rxrErr *RxrError
	if errors.As(err, &rxrErr) {
		return rxrErr.Details
	}
	return nil
}
