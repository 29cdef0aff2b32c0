package detect

import (
	"time"

	"github.com/adlrocha/agent-notifications/internal/task"
)

// PollContext carries the caller-held historical state for one check of
// one task. It is produced fresh by the polling caller on every poll and
// never persisted by the detection layer.
type PollContext struct {
	// PID is the operating-system process ID to inspect.
	PID int

	// LastCheck is when the caller last polled this task.
	LastCheck time.Time

	// LastCPUTime is the combined CPU-time sample (in ticks) from the
	// previous poll, or nil on the first poll. The caller carries this
	// forward; detectors only compare it for equality.
	LastCPUTime *uint64

	// IdleDuration is the caller-tracked elapsed time since the last
	// observed change in process activity. It is monotonically
	// non-decreasing while the process is inactive and resets to zero
	// the moment the caller observes new CPU activity or a state change.
	IdleDuration time.Duration
}

// Detector evaluates one attention heuristic against a task and its poll
// context.
//
// Implementations must be stateless aside from fixed configuration and
// safe for concurrent use: multiple polling goroutines may invoke Check on
// the same detector without coordination. Check never returns an error;
// any read failure degrades to a nil verdict.
type Detector interface {
	// Name returns a short identifier for the heuristic, used in logs
	// and one-shot check output.
	Name() string

	// Check returns the attention reason for the task, or nil if this
	// heuristic has no verdict.
	Check(t *task.Task, ctx PollContext) *AttentionReason
}
