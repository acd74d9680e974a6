package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeUnsupportedFormat ErrorType = "UNSUPPORTED_FORMAT"
	ErrTypeEmptyInput        ErrorType = "EMPTY_INPUT"
	ErrTypeMissingColumns    ErrorType = "MISSING_COLUMNS"
	ErrTypeInvalidRow        ErrorType = "INVALID_ROW"
	ErrTypeNoInputFiles      ErrorType = "NO_INPUT_FILES"
	ErrTypeParsing           ErrorType = "PARSING"
	ErrTypeStorage           ErrorType = "STORAGE"
	ErrTypeConfig            ErrorType = "CONFIG"
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

// Helper constructors for the pipeline error taxonomy

// NewUnsupportedFormatError reports a source file whose extension is not
// one of the readable formats. The file is skipped, the batch continues.
func NewUnsupportedFormatError(path string) *AppError {
	return NewAppError(ErrTypeUnsupportedFormat,
		fmt.Sprintf("unsupported file format: %s", path), nil)
}

// NewEmptyInputError reports a source with no data rows after reading.
func NewEmptyInputError() *AppError {
	return NewAppError(ErrTypeEmptyInput, "input contains no data rows", nil)
}

// NewNoInputFilesError reports a batch where zero files were
// successfully processed. Persistence must be skipped entirely.
func NewNoInputFilesError() *AppError {
	return NewAppError(ErrTypeNoInputFiles, "no input files were successfully processed", nil)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// MissingColumnsError reports required source columns absent from a
// file. The whole file is rejected; no partial rows are emitted.
type MissingColumnsError struct {
	Columns []string
}

// Error implements the error interface
func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("[%s] missing required columns: %s",
		ErrTypeMissingColumns, strings.Join(e.Columns, ", "))
}

// NewMissingColumnsError creates a MissingColumnsError for the given columns.
func NewMissingColumnsError(columns []string) *MissingColumnsError {
	return &MissingColumnsError{Columns: columns}
}

// IsMissingColumns reports whether err is a MissingColumnsError.
func IsMissingColumns(err error) bool {
	var mc *MissingColumnsError
	return errors.As(err, &mc)
}
