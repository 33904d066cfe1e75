package utils

import (
	"fmt"
	"strings"
)

// ErrorWithSuggestion wraps an error with a helpful suggestion for the user
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\nSuggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

// Unwrap allows errors.Is and errors.As to work
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// EmptyTitleMessage is shown whenever a todo is submitted without a title
const EmptyTitleMessage = "제목을 입력해주세요."

// ErrEmptyTitle creates an error for a blank todo title
func ErrEmptyTitle() error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("%s", EmptyTitleMessage),
		Suggestion: "Pass a non-empty title, e.g. todocal add \"Buy milk\"",
	}
}

// ErrTodoNotFound creates an error when a todo id does not resolve
func ErrTodoNotFound(id string) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("todo '%s' not found", id),
		Suggestion: "Run 'todocal list' to see todo ids",
	}
}

// ErrBackendOffline creates an error when the backend cannot be reached
func ErrBackendOffline(baseURL, reason string) error {
	suggestion := "Check your internet connection and try again"
	if strings.Contains(reason, "refused") {
		suggestion = "Check if the todo server is running at " + baseURL
	} else if strings.Contains(reason, "timeout") {
		suggestion = "The server may be slow or unreachable. Try again later"
	} else if strings.Contains(reason, "no such host") {
		suggestion = "Check the base_url in your config"
	}

	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("backend at %s is offline: %s", baseURL, reason),
		Suggestion: suggestion,
	}
}

// ErrServerFailure wraps a 5xx answer; the request reached the backend but it could not serve it
func ErrServerFailure(baseURL string, err error) error {
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: "The server at " + baseURL + " reported an internal error. Check its logs, or rerun with --verbose",
	}
}

// ErrInvalidDate creates an error for invalid date formats
func ErrInvalidDate(dateStr string) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("invalid date format: %s", dateStr),
		Suggestion: "Use YYYY-MM-DD format (e.g., 2026-01-15)",
	}
}

// ErrInvalidMonth creates an error for invalid month arguments
func ErrInvalidMonth(monthStr string) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("invalid month: %s", monthStr),
		Suggestion: "Use YYYY-MM format (e.g., 2026-01)",
	}
}

// ErrInvalidConfig creates an error for invalid configuration
func ErrInvalidConfig(field string, reason string) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("invalid configuration for '%s': %s", field, reason),
		Suggestion: fmt.Sprintf("Check your config.yaml and fix the '%s' field", field),
	}
}

// WrapWithSuggestion wraps an existing error with a suggestion
func WrapWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}
