package detect

import (
	"time"

	"github.com/adlrocha/agent-notifications/internal/procfs"
	"github.com/adlrocha/agent-notifications/internal/task"
)

// DefaultStallTimeout is how long a process may show zero CPU progress
// before being flagged as stalled.
const DefaultStallTimeout = 600 * time.Second

// DefaultStallMinTaskAge gates stall verdicts on task age. A freshly
// started process has no previous CPU sample to diverge from, so without
// this gate every new task would flag on its second poll.
const DefaultStallMinTaskAge = 30 * time.Second

// StallConfig holds the tunable thresholds for the stall heuristic.
type StallConfig struct {
	// Timeout is the minimum idle duration before a stall is flagged.
	// Zero falls back to DefaultStallTimeout.
	Timeout time.Duration

	// MinTaskAge is how old a task must be before a verdict is emitted.
	// Zero falls back to DefaultStallMinTaskAge.
	MinTaskAge time.Duration
}

// DefaultStallConfig returns the standard stall-detector thresholds.
func DefaultStallConfig() StallConfig {
	return StallConfig{
		Timeout:    DefaultStallTimeout,
		MinTaskAge: DefaultStallMinTaskAge,
	}
}

// StallDetector flags a process whose combined CPU time has not moved
// between two polls for longer than the configured timeout. CPU samples
// are compared for exact equality only; tick-rate normalization is
// deliberately out of scope.
//
// Safe for concurrent use.
type StallDetector struct {
	fs         procfs.Reader
	timeout    time.Duration
	minTaskAge time.Duration
}

// NewStallDetector creates a stall detector reading CPU accounting
// through fs.
func NewStallDetector(fs procfs.Reader, cfg StallConfig) *StallDetector {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultStallTimeout
	}
	minAge := cfg.MinTaskAge
	if minAge <= 0 {
		minAge = DefaultStallMinTaskAge
	}

	return &StallDetector{
		fs:         fs,
		timeout:    timeout,
		minTaskAge: minAge,
	}
}

// Name identifies the heuristic.
func (d *StallDetector) Name() string {
	return "stall"
}

// Timeout returns the configured stall timeout.
func (d *StallDetector) Timeout() time.Duration {
	return d.timeout
}

// Check reports ProcessStalled when the previous and current CPU samples
// are equal, the idle duration exceeds the timeout, and the age gate
// passes. With no previous sample (first poll) there is no verdict.
func (d *StallDetector) Check(t *task.Task, ctx PollContext) *AttentionReason {
	snap, err := d.fs.Stat(ctx.PID)
	if err != nil {
		return nil
	}

	if ctx.LastCPUTime == nil {
		return nil
	}
	if snap.CPUTime() != *ctx.LastCPUTime {
		return nil
	}
	if ctx.IdleDuration <= d.timeout {
		return nil
	}
	if t.Age(time.Now()) <= d.minTaskAge {
		return nil
	}

	return ProcessStalled()
}
