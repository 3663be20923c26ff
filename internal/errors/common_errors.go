package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeParsing       ErrorType = "PARSING"
	ErrTypeShapeMismatch ErrorType = "SHAPE_MISMATCH"
	ErrTypeMissingSheet  ErrorType = "MISSING_SHEET"
	ErrTypeMissingColumn ErrorType = "MISSING_COLUMN"
	ErrTypeStorage       ErrorType = "STORAGE"
	ErrTypeValidation    ErrorType = "VALIDATION"
	ErrTypeNotFound      ErrorType = "NOT_FOUND"
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

// IsType reports whether err wraps an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// Helper functions for common error types

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewShapeMismatchError reports an export body narrower than its week header.
func NewShapeMismatchError(expectedColumns, actualColumns int) *AppError {
	return NewAppError(ErrTypeShapeMismatch,
		fmt.Sprintf("export body has %d columns, week header needs %d", actualColumns, expectedColumns), nil).
		WithContext("expected_columns", expectedColumns).
		WithContext("actual_columns", actualColumns)
}

// NewMissingSheetError reports a required workbook sheet that is absent.
func NewMissingSheetError(sheet string) *AppError {
	return NewAppError(ErrTypeMissingSheet, fmt.Sprintf("workbook has no sheet %q", sheet), nil).
		WithContext("sheet", sheet)
}

// NewMissingColumnError reports a required header missing from a sheet.
func NewMissingColumnError(sheet, column string) *AppError {
	return NewAppError(ErrTypeMissingColumn, fmt.Sprintf("sheet %q has no column %q", sheet, column), nil).
		WithContext("sheet", sheet).
		WithContext("column", column)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}
