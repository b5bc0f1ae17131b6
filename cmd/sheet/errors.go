package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arthur-debert/probsheet/internal/validation"
	"github.com/arthur-debert/probsheet/sheet"
)

// invalidURLMessage is shown in place of validation.ErrInvalidURL
const invalidURLMessage = "Please enter a valid URL (including http:// or https://)"

// CLIError represents a user-friendly CLI error with context and suggestions
type CLIError struct {
	Operation   string   // The operation that failed (e.g., "add problem", "export")
	Cause       string   // The underlying cause (e.g., "topic not found")
	Details     string   // Additional technical details
	Suggestions []string // Helpful suggestions for the user
	Underlying  error    // Original error for debugging
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var msg strings.Builder

	if e.Operation != "" {
		msg.WriteString(fmt.Sprintf("Failed to %s", e.Operation))
	} else {
		msg.WriteString("Operation failed")
	}

	if e.Cause != "" {
		msg.WriteString(fmt.Sprintf(": %s", e.Cause))
	}

	if e.Details != "" {
		msg.WriteString(fmt.Sprintf(" (%s)", e.Details))
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return msg.String()
}

// Unwrap returns the underlying error for error chain compatibility
func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// NewValidationError creates an error for rejected user input
func NewValidationError(operation string, err error, suggestions ...string) *CLIError {
	cause := err.Error()
	if errors.Is(err, validation.ErrInvalidURL) {
		cause = invalidURLMessage
	}
	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Suggestions: suggestions,
		Underlying:  err,
	}
}

// NewNotFoundError creates an error for an id path that does not resolve
func NewNotFoundError(operation string, err error) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       err.Error(),
		Suggestions: []string{CommonSuggestions.CheckID, CommonSuggestions.CheckData},
		Underlying:  err,
	}
}

// NewStoreError creates an error for storage-related issues
func NewStoreError(operation string, underlying error, suggestions ...string) *CLIError {
	cause := "store operation failed"
	details := ""

	if underlying != nil {
		details = underlying.Error()

		errStr := strings.ToLower(underlying.Error())
		switch {
		case strings.Contains(errStr, "no such file"):
			cause = "file not found"
		case strings.Contains(errStr, "permission denied"):
			cause = "insufficient permissions to access the sheet"
			suggestions = append(suggestions, CommonSuggestions.CheckPerms)
		case strings.Contains(errStr, "database is locked"), strings.Contains(errStr, "acquire lock"):
			cause = "the sheet is currently locked by another process"
		case strings.Contains(errStr, "invalid"), strings.Contains(errStr, "unsupported"):
			cause = "invalid data provided"
		}
	}

	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Details:     details,
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// WrapError wraps an existing error with CLI-friendly context. Store lookups
// that miss become not-found errors pointing at 'sheet show'.
func WrapError(operation string, err error, suggestions ...string) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		if cliErr.Operation == "" {
			cliErr.Operation = operation
		}
		return cliErr
	}

	switch {
	case errors.Is(err, sheet.ErrNotFound):
		return NewNotFoundError(operation, err)
	case errors.Is(err, sheet.ErrIndexOutOfRange):
		return NewValidationError(operation, err, CommonSuggestions.CheckPosition)
	}

	return NewStoreError(operation, err, suggestions...)
}

// CommonSuggestions holds suggestion texts shared across commands
var CommonSuggestions = struct {
	CheckID       string
	CheckData     string
	CheckPosition string
	CheckConfig   string
	CheckPerms    string
	RunHelp       string
}{
	CheckID:       "Verify the ids exist (run 'sheet show' to list them)",
	CheckData:     "Verify --data and --backend point at the sheet you expect",
	CheckPosition: "Positions start at 1 (run 'sheet show' to see the current order)",
	CheckConfig:   "Check your configuration file or PROBSHEET_* environment variables",
	CheckPerms:    "Check file permissions and directory access",
	RunHelp:       "Run command with --help for usage information",
}
