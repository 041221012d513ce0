package models

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
)

// Machine-readable error codes surfaced in every error response body.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeInternal         = "INTERNAL_SERVER_ERROR"
)

// AppError is the domain error carried from the service layer to the HTTP
// boundary. Details typically holds the offending id(s).
type AppError struct {
	Code    string
	Message string
	Details map[string]any
	Stack   string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code to its HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeValidationFailed:
		return fiber.StatusBadRequest
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func newAppError(code, message string, details map[string]any) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
		Stack:   string(debug.Stack()),
	}
}

// NewValidationError reports malformed or duplicate input (400).
func NewValidationError(message string) *AppError {
	return newAppError(CodeValidationFailed, message, nil)
}

// NewUnauthorizedError reports missing or invalid credentials (401).
func NewUnauthorizedError(message string) *AppError {
	return newAppError(CodeUnauthorized, message, nil)
}

// NewForbiddenError reports an authenticated but disallowed request (403).
func NewForbiddenError(message string) *AppError {
	return newAppError(CodeForbidden, message, nil)
}

// NewNotFoundError reports an absent entity (404); details carries the id(s).
func NewNotFoundError(message string, details map[string]any) *AppError {
	return newAppError(CodeNotFound, message, details)
}

// NewInternalError wraps an unexpected failure (500).
func NewInternalError(err error) *AppError {
	appErr := newAppError(CodeInternal, "Internal server error", nil)
	appErr.Err = err
	return appErr
}

// ErrorResponse is the body shape of every error path.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Stack   string         `json:"stack,omitempty"`
}

// RespondWithError writes the standardized error body, deriving the status
// from the domain error code. Unknown errors surface as 500.
func RespondWithError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternalError(err)
	}

	return c.Status(appErr.StatusCode()).JSON(ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
		Stack:   appErr.Stack,
	})
}
