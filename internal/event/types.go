// Package event defines the event types that decouple the monitor from
// its consumers. The TUI and CLI subscribe to attention and lifecycle
// events without depending on the monitor package directly.
package event

import (
	"time"

	"github.com/adlrocha/agent-notifications/internal/detect"
	"github.com/adlrocha/agent-notifications/internal/task"
)

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "task.attention", "monitor.started")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Attention Events
// -----------------------------------------------------------------------------

// AttentionEvent is emitted when a detector flags a watched task.
type AttentionEvent struct {
	baseEvent
	TaskID   string                  // Task that needs attention
	PID      int                     // Process ID of the task
	Detector string                  // Name of the detector that produced the verdict
	Reason   *detect.AttentionReason // Why the task needs attention
}

// NewAttentionEvent creates an AttentionEvent.
func NewAttentionEvent(taskID string, pid int, detector string, reason *detect.AttentionReason) AttentionEvent {
	return AttentionEvent{
		baseEvent: newBaseEvent("task.attention"),
		TaskID:    taskID,
		PID:       pid,
		Detector:  detector,
		Reason:    reason,
	}
}

// AttentionClearedEvent is emitted when a previously flagged task stops
// needing attention, either because activity resumed or the verdict no
// longer holds.
type AttentionClearedEvent struct {
	baseEvent
	TaskID string // Task that no longer needs attention
	PID    int    // Process ID of the task
}

// NewAttentionClearedEvent creates an AttentionClearedEvent.
func NewAttentionClearedEvent(taskID string, pid int) AttentionClearedEvent {
	return AttentionClearedEvent{
		baseEvent: newBaseEvent("task.attention_cleared"),
		TaskID:    taskID,
		PID:       pid,
	}
}

// -----------------------------------------------------------------------------
// Task Lifecycle Events
// -----------------------------------------------------------------------------

// TaskWatchedEvent is emitted when a task is added to the monitor.
type TaskWatchedEvent struct {
	baseEvent
	TaskID string // Task that is now watched
	PID    int    // Process ID of the task
	Label  string // Human-readable label (may be empty)
}

// NewTaskWatchedEvent creates a TaskWatchedEvent.
func NewTaskWatchedEvent(taskID string, pid int, label string) TaskWatchedEvent {
	return TaskWatchedEvent{
		baseEvent: newBaseEvent("task.watched"),
		TaskID:    taskID,
		PID:       pid,
		Label:     label,
	}
}

// TaskExitedEvent is emitted when a watched process disappears.
type TaskExitedEvent struct {
	baseEvent
	TaskID string      // Task whose process exited
	PID    int         // Process ID that is gone
	Last   task.Status // Status the task held before exiting
}

// NewTaskExitedEvent creates a TaskExitedEvent.
func NewTaskExitedEvent(taskID string, pid int, last task.Status) TaskExitedEvent {
	return TaskExitedEvent{
		baseEvent: newBaseEvent("task.exited"),
		TaskID:    taskID,
		PID:       pid,
		Last:      last,
	}
}

// StatusChangeEvent is emitted when a task transitions between statuses.
type StatusChangeEvent struct {
	baseEvent
	TaskID   string      // Task that changed status
	Previous task.Status // Status before the transition
	Current  task.Status // Status after the transition
}

// NewStatusChangeEvent creates a StatusChangeEvent.
func NewStatusChangeEvent(taskID string, previous, current task.Status) StatusChangeEvent {
	return StatusChangeEvent{
		baseEvent: newBaseEvent("task.status_changed"),
		TaskID:    taskID,
		Previous:  previous,
		Current:   current,
	}
}

// -----------------------------------------------------------------------------
// Monitor Lifecycle Events
// -----------------------------------------------------------------------------

// MonitorStartedEvent is emitted when the polling loop starts.
type MonitorStartedEvent struct {
	baseEvent
	Interval time.Duration // Configured polling interval
}

// NewMonitorStartedEvent creates a MonitorStartedEvent.
func NewMonitorStartedEvent(interval time.Duration) MonitorStartedEvent {
	return MonitorStartedEvent{
		baseEvent: newBaseEvent("monitor.started"),
		Interval:  interval,
	}
}

// MonitorStoppedEvent is emitted when the polling loop shuts down.
type MonitorStoppedEvent struct {
	baseEvent
	Reason string // Why the monitor stopped (e.g., "context cancelled")
}

// NewMonitorStoppedEvent creates a MonitorStoppedEvent.
func NewMonitorStoppedEvent(reason string) MonitorStoppedEvent {
	return MonitorStoppedEvent{
		baseEvent: newBaseEvent("monitor.stopped"),
		Reason:    reason,
	}
}
