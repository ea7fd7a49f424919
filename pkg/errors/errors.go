package errors

import (
	"fmt"
)

// ErrorCategory represents the category of error for handling
type ErrorCategory string

const (
	CategoryConfig         ErrorCategory = "config_error"
	CategoryInvalidRequest ErrorCategory = "invalid_request"
	CategoryNetworkError   ErrorCategory = "network_error"
	CategoryUpstream       ErrorCategory = "upstream_error"
	CategorySystemError    ErrorCategory = "system_error"
)

// FeedError represents a feed submission error with context for the caller.
// Config errors are the operator's fault, network/upstream errors are not.
type FeedError struct {
	Code     string
	Message  string
	Category ErrorCategory
}

func (e *FeedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewFeedError creates a new feed error
func NewFeedError(code, message string, category ErrorCategory) *FeedError {
	return &FeedError{
		Code:     code,
		Message:  message,
		Category: category,
	}
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
