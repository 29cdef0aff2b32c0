package detect

import (
	"time"

	"github.com/gobwas/glob"

	"github.com/adlrocha/agent-notifications/internal/procfs"
	"github.com/adlrocha/agent-notifications/internal/task"
)

// DefaultTerminalPatterns are the descriptor targets treated as
// interactive terminals: pseudo-terminal slaves and controlling-tty
// devices. Anything else (regular file, pipe, socket) is not indicative
// of interactive waiting.
var DefaultTerminalPatterns = []string{
	"/dev/pts/*",
	"/dev/tty*",
}

// StateConfig holds the tunable thresholds for the state-based heuristic.
// The defaults are empirical false-positive suppressors carried over from
// operational experience, not derived values.
type StateConfig struct {
	// MinTaskAge is how old a task must be before a verdict is emitted.
	MinTaskAge time.Duration

	// MinIdle is the minimum caller-observed idle duration before a
	// verdict is emitted. Suppresses flags from normal short sleeps.
	MinIdle time.Duration

	// TerminalPatterns are glob patterns matched against the stdin
	// descriptor target to classify it as an interactive terminal.
	// Empty falls back to DefaultTerminalPatterns.
	TerminalPatterns []string
}

// DefaultStateConfig returns the standard state-detector thresholds.
func DefaultStateConfig() StateConfig {
	return StateConfig{
		MinTaskAge: 10 * time.Second,
		MinIdle:    5 * time.Second,
	}
}

// StateDetector flags a process that is sleeping while its stdin is
// connected to a terminal device: in that combination the process is
// likely blocked waiting for a human to type.
//
// Safe for concurrent use.
type StateDetector struct {
	fs       procfs.Reader
	cfg      StateConfig
	patterns []glob.Glob
}

// NewStateDetector creates a state-based detector reading process state
// through fs. Invalid terminal patterns are skipped.
func NewStateDetector(fs procfs.Reader, cfg StateConfig) *StateDetector {
	raw := cfg.TerminalPatterns
	if len(raw) == 0 {
		raw = DefaultTerminalPatterns
	}

	patterns := make([]glob.Glob, 0, len(raw))
	for _, p := range raw {
		if g, err := glob.Compile(p); err == nil {
			patterns = append(patterns, g)
		}
	}

	return &StateDetector{
		fs:       fs,
		cfg:      cfg,
		patterns: patterns,
	}
}

// Name identifies the heuristic.
func (d *StateDetector) Name() string {
	return "state"
}

// Check reports WaitingForInput when the process is in interruptible
// sleep, its stdin resolves to a terminal device, and both the age and
// idle gates pass. Any read failure yields no verdict.
func (d *StateDetector) Check(t *task.Task, ctx PollContext) *AttentionReason {
	snap, err := d.fs.Stat(ctx.PID)
	if err != nil {
		return nil
	}
	if snap.State != procfs.StateInterruptibleSleep {
		return nil
	}

	target, err := d.fs.FDTarget(ctx.PID, 0)
	if err != nil {
		return nil
	}
	if !d.isTerminal(target) {
		return nil
	}

	// Both gates must pass: a fresh task sleeping on its terminal is
	// normal startup, and a short sleep is normal scheduling.
	if t.Age(time.Now()) <= d.cfg.MinTaskAge {
		return nil
	}
	if ctx.IdleDuration <= d.cfg.MinIdle {
		return nil
	}

	return WaitingForInput()
}

// isTerminal reports whether the descriptor target looks like an
// interactive terminal device.
func (d *StateDetector) isTerminal(target string) bool {
	for _, g := range d.patterns {
		if g.Match(target) {
			return true
		}
	}
	return false
}
