// Package errors provides centralized error definitions and error handling
// utilities for agent-notifications. It defines domain-specific errors,
// semantic error types, error constructors with context wrapping, and error
// classification helpers.
//
// # Error Types
//
// The package provides two categories of errors:
//
// Domain-specific errors represent errors from specific subsystems:
//   - ProcessError: errors from reading a monitored process's kernel state
//   - MonitorError: errors from the monitoring/polling layer
//
// Semantic errors represent common error conditions:
//   - NotFoundError: resource not found
//   - ValidationError: invalid input or state
//
// # Usage
//
// Creating errors:
//
//	// Domain-specific error
//	err := errors.NewProcessError("failed to read stat", errors.ErrStatUnreadable).WithPID(pid)
//
//	// Semantic error
//	err := errors.NewNotFoundError("task", "task-1")
//
// Checking errors:
//
//	// Check for specific sentinel errors
//	if errors.Is(err, errors.ErrProcessNotFound) { ... }
//
//	// Check for error types
//	var procErr *errors.ProcessError
//	if errors.As(err, &procErr) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Process inspection sentinel errors
var (
	// ErrProcessNotFound indicates the process has exited or never existed.
	ErrProcessNotFound = New("process not found")
	// ErrStatUnreadable indicates the process status record could not be read.
	ErrStatUnreadable = New("process stat unreadable")
	// ErrMalformedStat indicates the process status record could not be parsed.
	ErrMalformedStat = New("process stat malformed")
	// ErrFDUnavailable indicates a file descriptor entry could not be resolved.
	ErrFDUnavailable = New("file descriptor unavailable")
)

// Monitor sentinel errors
var (
	// ErrTaskNotFound indicates the monitor is not tracking the given task.
	ErrTaskNotFound = New("task not found")
	// ErrAlreadyWatched indicates the task is already being tracked.
	ErrAlreadyWatched = New("task already watched")
	// ErrMonitorStopped indicates the monitor has been stopped.
	ErrMonitorStopped = New("monitor stopped")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message   string
	cause     error
	severity  Severity
	retryable bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// ProcessError represents errors from reading a monitored process's
// kernel-exposed state (stat record, file descriptor table).
//
// Example:
//
//	err := errors.NewProcessError("failed to read stat", errors.ErrStatUnreadable)
//	err = err.WithPID(1234).WithPath("/proc/1234/stat")
type ProcessError struct {
	baseError
	PID  int
	Path string
}

// NewProcessError creates a new ProcessError.
func NewProcessError(message string, cause error) *ProcessError {
	return &ProcessError{
		baseError: baseError{
			message:  message,
			cause:    cause,
			severity: SeverityWarning,
			// Process reads are transient by nature: the process may simply
			// have exited between poll scheduling and read.
			retryable: true,
		},
		PID: -1,
	}
}

// WithPID adds a process ID to the error context.
func (e *ProcessError) WithPID(pid int) *ProcessError {
	e.PID = pid
	return e
}

// WithPath adds the pseudo-filesystem path to the error context.
func (e *ProcessError) WithPath(path string) *ProcessError {
	e.Path = path
	return e
}

// WithSeverity sets the error severity.
func (e *ProcessError) WithSeverity(s Severity) *ProcessError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *ProcessError) Error() string {
	var parts []string
	if e.PID >= 0 {
		parts = append(parts, fmt.Sprintf("pid=%d", e.PID))
	}
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}

	prefix := "process error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("process error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ProcessError) Is(target error) bool {
	if _, ok := target.(*ProcessError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// MonitorError represents errors from the monitoring/polling layer.
//
// Example:
//
//	err := errors.NewMonitorError("cannot track task", errors.ErrAlreadyWatched).WithTaskID("task-1")
type MonitorError struct {
	baseError
	TaskID string
}

// NewMonitorError creates a new MonitorError.
func NewMonitorError(message string, cause error) *MonitorError {
	return &MonitorError{
		baseError: baseError{
			message:   message,
			cause:     cause,
			severity:  SeverityError,
			retryable: false,
		},
	}
}

// WithTaskID adds a task ID to the error context.
func (e *MonitorError) WithTaskID(id string) *MonitorError {
	e.TaskID = id
	return e
}

// WithSeverity sets the error severity.
func (e *MonitorError) WithSeverity(s Severity) *MonitorError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *MonitorError) Error() string {
	prefix := "monitor error"
	if e.TaskID != "" {
		prefix = fmt.Sprintf("monitor error [task=%s]", e.TaskID)
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *MonitorError) Is(target error) bool {
	if _, ok := target.(*MonitorError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("task", "task-1")
//	fmt.Println(err) // "task 'task-1' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:  fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity: SeverityWarning,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("pid must be positive")
//	err = err.WithField("pid").WithValue(-1)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:  message,
			severity: SeverityWarning,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// classifier is implemented by errors carrying severity and retry metadata.
type classifier interface {
	Severity() Severity
	IsRetryable() bool
}

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry. Process read failures are retryable: the
// polling caller decides the retry cadence.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var c classifier
	if As(err, &c) {
		return c.IsRetryable()
	}

	// A missing process is transient from the poll loop's perspective:
	// the next sweep simply observes the exit.
	return Is(err, ErrProcessNotFound)
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't carry classification metadata.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var c classifier
	if As(err, &c) {
		return c.Severity()
	}

	return SeverityError
}

// IsProcessGone reports whether the error means the monitored process no
// longer exists. Used by the monitor to distinguish "process exited" from
// transient read failures.
func IsProcessGone(err error) bool {
	return Is(err, ErrProcessNotFound)
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
