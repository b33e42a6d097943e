// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.pub

/*
Package apperr defines the centralized error handling framework for Inkwell.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Workflow taxonomy: Dedicated codes for workflow-engine failures so that
    a UI can render "this transition isn't allowed" differently from
    "try again, the server is unreachable".
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the canonical error type for the Inkwell API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "INVALID_TRANSITION").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// # Error Codes

// Machine-readable identifiers for the workflow-engine taxonomy. Clients
// branch on these codes to decide between retry and abort.
const (
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeEditorUnavailable = "EDITOR_UNAVAILABLE"
	CodeNotFound          = "NOT_FOUND"
	CodeStoreUnavailable  = "STORE_UNAVAILABLE"
	CodePartialFailure    = "PARTIAL_FAILURE"
)

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Manuscript") // Returns "Manuscript not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// InvalidTransition creates a 409 [AppError] for a workflow status change
// that is not allowed from the manuscript's current status.
//
// This is a hard reject: the engine never auto-corrects the requested target.
func InvalidTransition(from, to string) *AppError {
	return &AppError{
		Code:       CodeInvalidTransition,
		Message:    fmt.Sprintf("Cannot transition manuscript from '%s' to '%s'", from, to),
		HTTPStatus: http.StatusConflict,
	}
}

// EditorUnavailable creates a 409 [AppError] for a failed assignment
// precondition (editor at capacity or not accepting work).
//
// Non-retryable until the editor's availability state changes.
func EditorUnavailable(msg string) *AppError {
	return &AppError{
		Code:       CodeEditorUnavailable,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// StoreUnavailable creates a 503 [AppError] for a failed call to the
// persistent store (network, timeout). Retryable by the caller with backoff;
// the engine itself never retries internally.
func StoreUnavailable(cause error) *AppError {
	return &AppError{
		Code:       CodeStoreUnavailable,
		Message:    "Storage is temporarily unreachable, try again",
		HTTPStatus: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// Partial creates a [AppError] for an operation whose primary write succeeded
// but whose dependent write (audit history or notification) failed.
//
// The system is left in a valid-but-under-audited state, never rolled back.
// The distinct code lets the caller decide whether to alert an operator.
func Partial(msg string, cause error) *AppError {
	return &AppError{
		Code:       CodePartialFailure,
		Message:    msg,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsCode reports whether err carries the given machine-readable code.
func IsCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
