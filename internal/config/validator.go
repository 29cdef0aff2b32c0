package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "monitor.poll_interval_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateMonitor()...)
	errors = append(errors, c.validateDetect()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateMonitor validates the MonitorConfig
func (c *Config) validateMonitor() []ValidationError {
	var errors []ValidationError

	const minPollInterval = 100   // 100ms minimum
	const maxPollInterval = 60000 // 1 minute maximum

	if c.Monitor.PollIntervalMs < minPollInterval {
		errors = append(errors, ValidationError{
			Field:   "monitor.poll_interval_ms",
			Value:   c.Monitor.PollIntervalMs,
			Message: fmt.Sprintf("must be at least %dms", minPollInterval),
		})
	}
	if c.Monitor.PollIntervalMs > maxPollInterval {
		errors = append(errors, ValidationError{
			Field:   "monitor.poll_interval_ms",
			Value:   c.Monitor.PollIntervalMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxPollInterval),
		})
	}

	if strings.ContainsRune(c.Monitor.ProcRoot, '\x00') {
		errors = append(errors, ValidationError{
			Field:   "monitor.proc_root",
			Value:   c.Monitor.ProcRoot,
			Message: "path contains invalid null character",
		})
	}

	return errors
}

// validateDetect validates the DetectConfig
func (c *Config) validateDetect() []ValidationError {
	var errors []ValidationError

	if c.Detect.State.MinTaskAgeSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "detect.state.min_task_age_seconds",
			Value:   c.Detect.State.MinTaskAgeSeconds,
			Message: "must be non-negative",
		})
	}
	if c.Detect.State.MinIdleSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "detect.state.min_idle_seconds",
			Value:   c.Detect.State.MinIdleSeconds,
			Message: "must be non-negative",
		})
	}
	for i, p := range c.Detect.State.TerminalPatterns {
		if strings.TrimSpace(p) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("detect.state.terminal_patterns[%d]", i),
				Value:   p,
				Message: "pattern cannot be empty",
			})
		}
	}

	if c.Detect.Stall.TimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "detect.stall.timeout_seconds",
			Value:   c.Detect.Stall.TimeoutSeconds,
			Message: "must be positive",
		})
	}
	if c.Detect.Stall.MinTaskAgeSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "detect.stall.min_task_age_seconds",
			Value:   c.Detect.Stall.MinTaskAgeSeconds,
			Message: "must be non-negative",
		})
	}

	if c.Detect.Stdin.MinTaskAgeSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "detect.stdin.min_task_age_seconds",
			Value:   c.Detect.Stdin.MinTaskAgeSeconds,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	const minRefresh = 100   // 100ms minimum
	const maxRefresh = 30000 // 30 seconds maximum

	if c.TUI.RefreshMs < minRefresh {
		errors = append(errors, ValidationError{
			Field:   "tui.refresh_ms",
			Value:   c.TUI.RefreshMs,
			Message: fmt.Sprintf("must be at least %dms", minRefresh),
		})
	}
	if c.TUI.RefreshMs > maxRefresh {
		errors = append(errors, ValidationError{
			Field:   "tui.refresh_ms",
			Value:   c.TUI.RefreshMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxRefresh),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	// Reasonable upper bound for log file size
	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
