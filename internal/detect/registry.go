package detect

import (
	"github.com/adlrocha/agent-notifications/internal/procfs"
	"github.com/adlrocha/agent-notifications/internal/task"
)

// Registry is an ordered, immutable collection of active detectors.
// Construct one at startup and share it freely: it never mutates, so
// concurrent polls need no coordination. Reconfiguration means
// constructing a new registry.
type Registry struct {
	detectors []Detector
}

// NewRegistry creates a registry with the given detectors in order.
func NewRegistry(detectors ...Detector) *Registry {
	ds := make([]Detector, len(detectors))
	copy(ds, detectors)
	return &Registry{detectors: ds}
}

// NewDefaultRegistry returns the default, non-invasive configuration:
// the state-based detector followed by the stall detector with the
// standard 600-second timeout. The lsof-based stdin detector is
// deliberately omitted because it spawns an external process per check.
func NewDefaultRegistry(fs procfs.Reader) *Registry {
	return NewRegistry(
		NewStateDetector(fs, DefaultStateConfig()),
		NewStallDetector(fs, DefaultStallConfig()),
	)
}

// Check runs the detectors in order and returns the first verdict,
// or nil if no detector has one.
func (r *Registry) Check(t *task.Task, ctx PollContext) *AttentionReason {
	for _, d := range r.detectors {
		if reason := d.Check(t, ctx); reason != nil {
			return reason
		}
	}
	return nil
}

// Verdict pairs a detector's name with its reason, for callers that want
// every heuristic's answer rather than the first.
type Verdict struct {
	Detector string
	Reason   *AttentionReason
}

// CheckAll runs every detector in order and collects all verdicts,
// including nil ones, so callers can display per-heuristic results.
func (r *Registry) CheckAll(t *task.Task, ctx PollContext) []Verdict {
	verdicts := make([]Verdict, 0, len(r.detectors))
	for _, d := range r.detectors {
		verdicts = append(verdicts, Verdict{
			Detector: d.Name(),
			Reason:   d.Check(t, ctx),
		})
	}
	return verdicts
}

// Detectors returns a copy of the detector list in registry order.
func (r *Registry) Detectors() []Detector {
	ds := make([]Detector, len(r.detectors))
	copy(ds, r.detectors)
	return ds
}

// Len returns the number of detectors in the registry.
func (r *Registry) Len() int {
	return len(r.detectors)
}
