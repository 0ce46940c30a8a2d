package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeCatalogLoad indicates the catalog source was malformed or unreachable
	ErrorTypeCatalogLoad ErrorType = "CATALOG_LOAD"

	// ErrorTypeInvalidFilter indicates contradictory or malformed filter criteria
	ErrorTypeInvalidFilter ErrorType = "INVALID_FILTER"

	// ErrorTypeGeoUnavailable indicates the user's origin point could not be determined
	ErrorTypeGeoUnavailable ErrorType = "GEO_UNAVAILABLE"

	// ErrorTypeUnavailable indicates the engine is not ready to serve yet
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"

	// ErrorTypeExternal indicates an error from external service
	ErrorTypeExternal ErrorType = "EXTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsType reports whether err is an AppError of the given type
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewCatalogLoadError creates a new catalog load error
func NewCatalogLoadError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeCatalogLoad,
		Message: message,
		Err:     err,
	}
}

// NewInvalidFilterError creates a new invalid filter error
func NewInvalidFilterError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidFilter,
		Message: message,
	}
}

// NewGeoUnavailableError creates a new geo unavailable error
func NewGeoUnavailableError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeGeoUnavailable,
		Message: message,
	}
}

// NewUnavailableError creates a new unavailable error
func NewUnavailableError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnavailable,
		Message: message,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// NewExternalError creates a new external service error
func NewExternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: message,
		Err:     err,
	}
}
