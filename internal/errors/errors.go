package errors

import (
	"fmt"

	"github.com/jonlighthall/tldiff/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeDatabaseError   = "DATABASE_ERROR"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeExternalService = "EXTERNAL_SERVICE_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"

	// Comparison error taxonomy (spec §7)
	CodeFileAccess         = "FILE_ACCESS_ERROR"
	CodeParseError         = "PARSE_ERROR"
	CodeStructureMismatch  = "STRUCTURE_MISMATCH"
	CodeFileLengthMismatch = "FILE_LENGTH_MISMATCH"
	CodeCriticalDifference = "CRITICAL_DIFFERENCE"
	CodePrecisionOverflow  = "PRECISION_OVERFLOW"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string) *AppError {
	return New(CodeDatabaseError, message)
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code:    CodeExternalService,
		Message: fmt.Sprintf("%s service error", service),
		Cause:   cause,
	}
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// FileAccessError wraps a failure to open or read an input file. It is
// always fatal: the comparison never runs.
func FileAccessError(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeFileAccess,
		Message: fmt.Sprintf("cannot access %s", path),
		Cause:   cause,
	}
}

// ParseError wraps a malformed-token or malformed-complex failure at a
// specific line. It marks the current line untrustworthy but is not fatal.
// cause is usually one of the domain/core parse sentinels; IsParseError
// can recover that classification after wrapping.
func ParseError(line int, cause error) *AppError {
	return &AppError{
		Code:    CodeParseError,
		Message: fmt.Sprintf("line %d: malformed token", line),
		Cause:   cause,
	}
}

// StructureMismatch wraps a differing-column-count failure between the
// two files at the same line.
func StructureMismatch(line, nCol1, nCol2 int) *AppError {
	return &AppError{
		Code:    CodeStructureMismatch,
		Message: fmt.Sprintf("line %d: column counts differ (%d vs %d)", line, nCol1, nCol2),
		Cause:   core.ErrStructureMismatch,
	}
}

// FileLengthMismatch reports that one file ended before the other.
func FileLengthMismatch(atLine int) *AppError {
	return &AppError{
		Code:    CodeFileLengthMismatch,
		Message: fmt.Sprintf("files have different line counts (stopped at line %d)", atLine),
		Cause:   core.ErrFileLengthMismatch,
	}
}

// CriticalDifference reports the first critical difference encountered.
func CriticalDifference(line, column int) *AppError {
	return New(CodeCriticalDifference, fmt.Sprintf("line %d column %d: critical difference", line, column))
}

// PrecisionOverflow is advisory, not fatal: a token exceeded single-precision
// significant figures.
func PrecisionOverflow(line, column int, sigFigs int) *AppError {
	return New(CodePrecisionOverflow, fmt.Sprintf("line %d column %d: %d significant figures exceeds single precision", line, column, sigFigs))
}

