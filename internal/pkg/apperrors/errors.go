package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("not authorized")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidRole        = errors.New("invalid role")
)

// Meetup errors
var (
	ErrMeetupNotFound      = errors.New("meetup not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrInvalidMeetupStatus = errors.New("invalid meetup status")
)

// UnresolvedParticipantsError reports invitee emails that do not belong to any
// registered user. Meetup creation is all-or-nothing: a single unknown email
// fails the whole operation.
type UnresolvedParticipantsError struct {
	Missing []string
}

// Error implements the error interface
func (e *UnresolvedParticipantsError) Error() string {
	return fmt.Sprintf("unresolved participant emails: %s", strings.Join(e.Missing, ", "))
}

// NewUnresolvedParticipantsError creates an UnresolvedParticipantsError
func NewUnresolvedParticipantsError(missing []string) *UnresolvedParticipantsError {
	return &UnresolvedParticipantsError{Missing: missing}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewForbiddenError creates a permission denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}
