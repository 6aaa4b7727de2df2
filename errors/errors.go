package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypePrecondition is fatal: the plugin cannot run at all.
	ErrorTypePrecondition ErrorType = "precondition"
	// ErrorTypeIO is a recoverable filesystem failure; independent work continues.
	ErrorTypeIO ErrorType = "io"
	// ErrorTypeDelegated wraps failures raised by an external collaborator.
	ErrorTypeDelegated ErrorType = "delegated"
	// ErrorTypeConfig is a configuration loading or validation failure.
	ErrorTypeConfig ErrorType = "config"

	ErrorTypeUnknown ErrorType = "unknown"
)

// Detail keys used by the IO constructors.
const (
	DetailOp     = "op"
	DetailPath   = "path"
	DetailPlugin = "plugin"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType      `json:"type"`
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	InnerError error          `json:"-"`
	Stack      []string       `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Type)
	}
	if e.InnerError != nil {
		return msg + ": " + e.InnerError.Error()
	}
	return msg
}

// Unwrap returns the inner error
func (e *AppError) Unwrap() error {
	return e.InnerError
}

// WithCode adds a code to the error
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithDetail adds a detail to the error
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// Detail returns a detail value as a string, or "" when absent.
func (e *AppError) Detail(key string) string {
	v, ok := e.Details[key]
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}

// StackTrace joins the captured frames, one per line.
func (e *AppError) StackTrace() string {
	return strings.Join(e.Stack, "\n")
}

// Is checks if this error is of a specific type
func (e *AppError) Is(target error) bool {
	if targetApp, ok := target.(*AppError); ok {
		return e.Type == targetApp.Type
	}
	return false
}

// New creates a new AppError
func New(errType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Code:    string(errType),
	}
}

// FromError converts a standard error to AppError
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return &AppError{
		Type:       ErrorTypeUnknown,
		Message:    err.Error(),
		InnerError: err,
	}
}

// WrapWithType wraps an error with a specific type
func WrapWithType(err error, errType ErrorType, message string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		InnerError: err,
		Code:       string(errType),
	}
}

// NewPrecondition reports a missing prerequisite the caller cannot recover from.
func NewPrecondition(message string) *AppError {
	return New(ErrorTypePrecondition, message).WithCode(CodeMissingHost)
}

// NewIO wraps a filesystem failure with the operation and path involved.
func NewIO(op, path string, err error) *AppError {
	appErr := WrapWithType(err, ErrorTypeIO, fmt.Sprintf("%s %s", op, path)).
		WithCode(CodeIOFailure).
		WithDetail(DetailOp, op).
		WithDetail(DetailPath, path)
	appErr.Stack = captureStack(2)
	return appErr
}

// NewDelegated marks an error raised by an external collaborator. The
// original error stays reachable through Unwrap.
func NewDelegated(source string, err error) *AppError {
	return WrapWithType(err, ErrorTypeDelegated, source).WithCode(CodeDelegated)
}

// NewConfig reports a configuration failure.
func NewConfig(message string, err error) *AppError {
	return WrapWithType(err, ErrorTypeConfig, message).WithCode(CodeConfigInvalid)
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Type == errType
}

// Error codes for specific scenarios
const (
	CodeMissingHost   = "MISSING_HOST"
	CodeIOFailure     = "IO_FAILURE"
	CodeDelegated     = "DELEGATED"
	CodeConfigInvalid = "CONFIG_INVALID"
)

// captureStack captures the call stack
func captureStack(skip int) []string {
	var stack []string
	for i := skip; i < 10; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		funcName := fn.Name()
		// Shorten function name
		if idx := strings.LastIndex(funcName, "/"); idx >= 0 {
			funcName = funcName[idx+1:]
		}

		stack = append(stack, fmt.Sprintf("%s:%d %s", file, line, funcName))
	}
	return stack
}
