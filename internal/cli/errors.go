// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types and exit codes for CLI commands.
//
// Commands always return errors and let the caller decide how to show them.

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/jeranaias/missionchat/internal/config"
	"github.com/jeranaias/missionchat/internal/storage"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitNotFoundError indicates a resource was not found
	ExitNotFoundError = 7
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "log", "config")
	Action  string // Action being performed (e.g., "show", "init")
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation failure for user input.
type ValidationError struct {
	Field   string // Field that failed validation
	Value   string // Value that was provided
	Reason  string // Why validation failed
	Example string // Example of valid value (optional)
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// NotFoundError represents a resource not found error.
type NotFoundError struct {
	Resource string // Type of resource (e.g., "config file", "log file")
	ID       string // Identifier that was not found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// =============================================================================
// ERROR CONSTRUCTION HELPERS
// =============================================================================

// NewCommandError creates a new command error.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{
		Command: command,
		Action:  action,
		Reason:  reason,
		Err:     err,
	}
}

// NewValidationErrorWithExample creates a validation error with an example.
func NewValidationErrorWithExample(field, value, reason, example string) error {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Reason:  reason,
		Example: example,
	}
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// ErrMissingArgument creates an error for missing required arguments.
func ErrMissingArgument(argName, usage string) error {
	return NewValidationErrorWithExample(argName, "", "required argument missing", usage)
}

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// GetExitCode determines the exit code for an error:
//   - ExitUsageError (2): ValidationError, unknown storage backend
//   - ExitConfigError (3): config validation or config-related errors
//   - ExitNotFoundError (7): NotFoundError or a missing file
//   - ExitGeneralError (1): all other errors
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ExitUsageError
	}
	if errors.Is(err, storage.ErrUnknownBackend) {
		return ExitUsageError
	}

	var configErrs config.ValidateErrors
	if errors.As(err, &configErrs) {
		return ExitConfigError
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) || errors.Is(err, fs.ErrNotExist) {
		return ExitNotFoundError
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "config") ||
		strings.Contains(errMsg, "lexicon") {
		return ExitConfigError
	}

	return ExitGeneralError
}
