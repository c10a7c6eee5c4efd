package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeConflict     ErrorCode = "CONFLICT"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Tutorial and playback errors
	CodeTutorialNotFound     ErrorCode = "TUTORIAL_NOT_FOUND"
	CodeNotSubscribed        ErrorCode = "NOT_SUBSCRIBED"
	CodeAlreadySubscribed    ErrorCode = "ALREADY_SUBSCRIBED"
	CodeNotPublished         ErrorCode = "TUTORIAL_NOT_PUBLISHED"
	CodeInvalidPlayback      ErrorCode = "INVALID_PLAYBACK_STATE"
	CodeAnswerAlreadyLocked  ErrorCode = "ANSWER_ALREADY_RECORDED"
	CodePlaybackSessionGone  ErrorCode = "PLAYBACK_SESSION_NOT_FOUND"
	CodeGenerationFailed     ErrorCode = "GENERATION_FAILED"
	CodeSpeechServiceError   ErrorCode = "SPEECH_SERVICE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper constructors for common errors

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(CodeForbidden, message, nil)
}

func NewTutorialNotFoundError(tutorialID string) *DomainError {
	return NewError(CodeTutorialNotFound, fmt.Sprintf("Tutorial not found with ID: %s", tutorialID), nil)
}

func NewNotSubscribedError(tutorialID string) *DomainError {
	return NewError(CodeNotSubscribed, fmt.Sprintf("Not subscribed to tutorial: %s", tutorialID), nil)
}

func NewAlreadySubscribedError(tutorialID string) *DomainError {
	return NewError(CodeAlreadySubscribed, fmt.Sprintf("Already subscribed to tutorial: %s", tutorialID), nil)
}

func NewInvalidPlaybackError(message string) *DomainError {
	return NewError(CodeInvalidPlayback, message, nil)
}

func NewGenerationError(cause error) *DomainError {
	return NewError(CodeGenerationFailed, "Failed to generate tutorial content", cause)
}

func NewSpeechServiceError(cause error) *DomainError {
	return NewError(CodeSpeechServiceError, "Speech service request failed", cause)
}

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Code    ErrorCode `json:"code"`
	Field   string    `json:"field"`
	Message string    `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates validation failures for one request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s (and %d more)", e[0].Error(), len(e)-1)
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{
		Code:    CodeMissingField,
		Field:   field,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{
		Code:    CodeInvalidFormat,
		Field:   field,
		Message: fmt.Sprintf("invalid format for %s: %q", field, value),
	}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{
		Code:    CodeOutOfRange,
		Field:   field,
		Message: fmt.Sprintf("%s must be between %d and %d, got %d", field, min, max, value),
	}
}
