package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Manifest errors
	ErrManifestLoad    ErrorCode = "MANIFEST_LOAD"
	ErrManifestInvalid ErrorCode = "MANIFEST_INVALID"

	// Ownership errors
	ErrOwnerLookup ErrorCode = "OWNER_LOOKUP"

	// IDE configuration file errors
	ErrUnsupportedRoot ErrorCode = "UNSUPPORTED_ROOT"
	ErrInvalidXML      ErrorCode = "INVALID_XML"

	// JDK errors
	ErrJDKLayout   ErrorCode = "JDK_LAYOUT"
	ErrJDKNotFound ErrorCode = "JDK_NOT_FOUND"
	ErrJDKVersion  ErrorCode = "JDK_VERSION"
	ErrCommand     ErrorCode = "COMMAND"

	// Plugin errors
	ErrBuildNumber    ErrorCode = "BUILD_NUMBER"
	ErrPluginNotFound ErrorCode = "PLUGIN_NOT_FOUND"
	ErrPluginEmpty    ErrorCode = "PLUGIN_EMPTY"
	ErrHTTP           ErrorCode = "HTTP"
	ErrDownload       ErrorCode = "DOWNLOAD"
	ErrUnsafePath     ErrorCode = "UNSAFE_PATH"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCreate   ErrorCode = "FILE_CREATE"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
	ErrChown        ErrorCode = "CHOWN"
)

// ProvisionError represents a structured error with code and details
type ProvisionError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ProvisionError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ProvisionError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ProvisionError) Is(target error) bool {
	var targetErr *ProvisionError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ProvisionError with the given code and message
func New(code ErrorCode, message string) *ProvisionError {
	return &ProvisionError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ProvisionError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ProvisionError {
	return &ProvisionError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ProvisionError
func Wrap(err error, code ErrorCode, message string) *ProvisionError {
	if err == nil {
		return nil
	}
	return &ProvisionError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ProvisionError {
	if err == nil {
		return nil
	}
	return &ProvisionError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ProvisionError) WithDetail(key string, value interface{}) *ProvisionError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var provErr *ProvisionError
	if errors.As(err, &provErr) {
		return provErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ProvisionError
func GetErrorCode(err error) ErrorCode {
	var provErr *ProvisionError
	if errors.As(err, &provErr) {
		return provErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ProvisionError
func GetErrorDetails(err error) map[string]interface{} {
	var provErr *ProvisionError
	if errors.As(err, &provErr) {
		return provErr.Details
	}
	return nil
}

// UserMessage renders err for people: the messages along the wrap chain
// joined by ": ", without error codes.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var parts []string
	for err != nil {
		provErr, ok := err.(*ProvisionError)
		if !ok {
			parts = append(parts, err.Error())
			break
		}
		if provErr.Message != "" {
			parts = append(parts, provErr.Message)
		}
		err = provErr.Wrapped
	}
	return strings.Join(parts, ": ")
}
