// Package task defines the descriptor for a monitored agent task.
//
// A Task is owned by the task-management layer; the detection subsystem
// consumes it read-only and only ever derives the task's age from it.
// Status transitions are applied by the monitor, never by detectors.
package task

import (
	"time"

	"github.com/adlrocha/agent-notifications/internal/errors"
)

// Status represents the current observed state of a monitored task.
type Status string

const (
	// StatusPending indicates the task has been registered but not yet polled.
	StatusPending Status = "pending"

	// StatusRunning indicates the task's process is alive and making progress.
	StatusRunning Status = "running"

	// StatusWaiting indicates the task appears blocked on interactive input.
	StatusWaiting Status = "waiting"

	// StatusStalled indicates the task has shown no CPU progress for an
	// abnormal duration.
	StatusStalled Status = "stalled"

	// StatusExited indicates the task's process is no longer present.
	StatusExited Status = "exited"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// NeedsAttention returns true if this status represents a condition a
// human should look at.
func (s Status) NeedsAttention() bool {
	return s == StatusWaiting || s == StatusStalled
}

// IsTerminal returns true if this status represents a final state.
func (s Status) IsTerminal() bool {
	return s == StatusExited
}

// Task describes one monitored agent process.
type Task struct {
	// ID uniquely identifies the task within the monitor.
	ID string `json:"id"`

	// Label is an optional human-readable description shown in the UI.
	Label string `json:"label,omitempty"`

	// PID is the operating-system process ID being monitored.
	PID int `json:"pid"`

	// CreatedAt is when the task was created. Detectors use it to gate
	// verdicts on task age.
	CreatedAt time.Time `json:"created_at"`

	// Status is the last status applied by the monitor.
	Status Status `json:"status"`
}

// New creates a Task for the given process with the current time as its
// creation timestamp.
func New(id string, pid int) *Task {
	return &Task{
		ID:        id,
		PID:       pid,
		CreatedAt: time.Now(),
		Status:    StatusPending,
	}
}

// Validate checks that the task descriptor is usable for monitoring.
func (t *Task) Validate() error {
	if t.ID == "" {
		return errors.NewValidationError("task ID cannot be empty").WithField("id")
	}
	if t.PID <= 0 {
		return errors.NewValidationError("pid must be positive").WithField("pid").WithValue(t.PID)
	}
	if t.CreatedAt.IsZero() {
		return errors.NewValidationError("creation timestamp is required").WithField("created_at")
	}
	return nil
}

// Age returns how long the task has existed at the given instant,
// in whole-second resolution consistent with the detector age gates.
func (t *Task) Age(now time.Time) time.Duration {
	return now.Sub(t.CreatedAt).Truncate(time.Second)
}

// DisplayName returns the label if set, otherwise the ID.
func (t *Task) DisplayName() string {
	if t.Label != "" {
		return t.Label
	}
	return t.ID
}
