// Package errors provides structured application errors with HTTP status
// mapping for the API layer.
package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeTooManyRequests  ErrorCode = "TOO_MANY_REQUESTS"

	// Server errors (5xx)
	CodeInternal             ErrorCode = "INTERNAL_ERROR"
	CodeServiceUnavailable   ErrorCode = "SERVICE_UNAVAILABLE"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Business errors
	CodeRecipeNotFound          ErrorCode = "RECIPE_NOT_FOUND"
	CodeExternalRecipeNotFound  ErrorCode = "EXTERNAL_RECIPE_NOT_FOUND"
	CodeUserNotFound            ErrorCode = "USER_NOT_FOUND"
	CodeBookmarkNotFound        ErrorCode = "BOOKMARK_NOT_FOUND"
	CodeBookmarkAlreadyExists   ErrorCode = "BOOKMARK_ALREADY_EXISTS"
	CodeInvalidCredentials      ErrorCode = "INVALID_CREDENTIALS"
	CodeEmailAlreadyExists      ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeUsernameAlreadyExists   ErrorCode = "USERNAME_ALREADY_EXISTS"
	CodeInsufficientPermissions ErrorCode = "INSUFFICIENT_PERMISSIONS"
)

// AppError is the error type carried across service boundaries. Handlers
// translate it into an HTTP response via StatusCode.
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Cause    error                  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode maps the error code to an HTTP status code.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeInvalidCredentials:
		return http.StatusUnauthorized
	case CodeForbidden, CodeInsufficientPermissions:
		return http.StatusForbidden
	case CodeNotFound, CodeRecipeNotFound, CodeExternalRecipeNotFound,
		CodeUserNotFound, CodeBookmarkNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeBookmarkAlreadyExists, CodeEmailAlreadyExists,
		CodeUsernameAlreadyExists:
		return http.StatusConflict
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata attaches a key/value pair to the error.
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause attaches the underlying cause.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// New creates an application error with the given code.
func New(code ErrorCode, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// Constructors for common scenarios.

func NewBadRequestError(message string) *AppError {
	return New(CodeBadRequest, message, "")
}

func NewValidationError(details string) *AppError {
	return New(CodeValidationFailed, "Validation failed", details)
}

func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Authentication required"
	}
	return New(CodeUnauthorized, message, "")
}

func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = "Access forbidden"
	}
	return New(CodeForbidden, message, "")
}

func NewNotFoundError(resource string) *AppError {
	message := "Resource not found"
	if resource != "" {
		message = resource + " not found"
	}
	return New(CodeNotFound, message, "")
}

func NewConflictError(message string) *AppError {
	return New(CodeConflict, message, "")
}

func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return New(CodeInternal, message, "")
}

func NewDatabaseError(operation string, cause error) *AppError {
	return New(
		CodeDatabaseError,
		"Database operation failed",
		fmt.Sprintf("Failed to %s", operation),
	).WithCause(cause)
}

func NewExternalServiceError(service string, cause error) *AppError {
	return New(
		CodeExternalServiceError,
		"External service error",
		fmt.Sprintf("Failed to communicate with %s", service),
	).WithCause(cause)
}

// Domain-specific constructors.

func NewRecipeNotFoundError(recipeID string) *AppError {
	return New(
		CodeRecipeNotFound,
		"Recipe not found",
		fmt.Sprintf("Recipe with ID %s does not exist", recipeID),
	).WithMetadata("recipe_id", recipeID)
}

func NewExternalRecipeNotFoundError(externalID string) *AppError {
	return New(
		CodeExternalRecipeNotFound,
		"External recipe not found",
		fmt.Sprintf("Recipe %s was not found at the provider", externalID),
	).WithMetadata("external_id", externalID)
}

func NewUserNotFoundError(userID string) *AppError {
	return New(
		CodeUserNotFound,
		"User not found",
		fmt.Sprintf("User with ID %s does not exist", userID),
	).WithMetadata("user_id", userID)
}

func NewBookmarkNotFoundError(recipeID string) *AppError {
	return New(
		CodeBookmarkNotFound,
		"Bookmark not found",
		fmt.Sprintf("Recipe %s is not bookmarked", recipeID),
	).WithMetadata("recipe_id", recipeID)
}

func NewBookmarkAlreadyExistsError(recipeID string) *AppError {
	return New(
		CodeBookmarkAlreadyExists,
		"Recipe already bookmarked",
		fmt.Sprintf("Recipe %s is already bookmarked", recipeID),
	).WithMetadata("recipe_id", recipeID)
}

func NewInvalidCredentialsError() *AppError {
	return New(
		CodeInvalidCredentials,
		"Invalid credentials",
		"The provided email or password is incorrect",
	)
}

func NewEmailAlreadyExistsError() *AppError {
	return New(
		CodeEmailAlreadyExists,
		"Email already exists",
		"An account with this email address already exists",
	)
}

func NewUsernameAlreadyExistsError() *AppError {
	return New(
		CodeUsernameAlreadyExists,
		"Username already exists",
		"This username is already taken",
	)
}

func NewInsufficientPermissionsError(action string) *AppError {
	return New(
		CodeInsufficientPermissions,
		"Insufficient permissions",
		fmt.Sprintf("You don't have permission to %s", action),
	).WithMetadata("action", action)
}

// Wrap converts err into an AppError, passing through values that already
// are one.
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewInternalError(message).WithCause(err)
}

// Is reports whether err carries the given error code.
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error.
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// ValidationError describes a single failed field.
type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value"`
	Tag     string      `json:"tag"`
	Message string      `json:"message"`
}

// ValidationErrors aggregates field failures from a single request.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// NewValidationErrors wraps field failures into a single AppError.
func NewValidationErrors(errs []ValidationError) *AppError {
	validationErrs := ValidationErrors(errs)
	return New(
		CodeValidationFailed,
		"Validation failed",
		validationErrs.Error(),
	).WithMetadata("validation_errors", validationErrs)
}
