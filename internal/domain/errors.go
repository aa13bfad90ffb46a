package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrWorkspaceNotFound  = errors.New("workspace not found")
	ErrInvalidLanguage    = errors.New("unsupported language code")
	ErrMissingCredential  = errors.New("no collaborator credential configured")
	ErrEmptyResponse      = errors.New("no response received from the collaborator")
	ErrMalformedResponse  = errors.New("collaborator response does not match the result contract")
	ErrNotIdle            = errors.New("a document is already being processed or shown; reset first")
	ErrNoResult           = errors.New("no processed document available")
	ErrChatBusy           = errors.New("a chat turn is already in progress")
	ErrEmptyMessage       = errors.New("message must not be empty")
	ErrActionOutOfRange   = errors.New("action index out of range")
	ErrUnsupportedExport  = errors.New("unsupported export format")
	ErrCollaboratorFailed = errors.New("collaborator request failed")
)

// Validation failure reasons.
const (
	ReasonUnsupportedType = "unsupported_type"
	ReasonTooLarge        = "too_large"
	ReasonEmpty           = "empty"
)

// ValidationError reports a rejected upload. It is raised before any network call.
type ValidationError struct {
	Reason  string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(reason, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// MalformedResponseError reports a collaborator response that violated the contract.
type MalformedResponseError struct {
	Field string // missing or mistyped field path, empty when the JSON itself is invalid
	Cause error
}

func (e *MalformedResponseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed response: field %q missing or invalid", e.Field)
	}
	return fmt.Sprintf("malformed response: %v", e.Cause)
}

func (e *MalformedResponseError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrMalformedResponse, e.Cause}
	}
	return []error{ErrMalformedResponse}
}

// ChatTurnError wraps a failed chat turn. It is absorbed into the transcript.
type ChatTurnError struct {
	Err error
}

func (e *ChatTurnError) Error() string {
	return fmt.Sprintf("chat turn failed: %v", e.Err)
}

func (e *ChatTurnError) Unwrap() error {
	return e.Err
}
