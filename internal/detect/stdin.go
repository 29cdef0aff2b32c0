package detect

import (
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/adlrocha/agent-notifications/internal/task"
)

// StdinConfig holds the tunable threshold for the lsof-based heuristic.
type StdinConfig struct {
	// MinTaskAge gates verdicts to avoid flagging normal startup reads.
	// Zero falls back to DefaultStallMinTaskAge.
	MinTaskAge time.Duration
}

// DefaultStdinConfig returns the standard stdin-detector threshold.
func DefaultStdinConfig() StdinConfig {
	return StdinConfig{MinTaskAge: 30 * time.Second}
}

// StdinDetector asks lsof whether the process has descriptor 0 open.
// More than a trivial one-line result (lsof prints a header line before
// any descriptor rows) is taken as "actively reading stdin". The
// heuristic is deliberately coarse; it mirrors long-standing behavior
// rather than lsof's exact output grammar.
//
// This detector spawns an external process per check and is excluded
// from the default registry for that reason.
//
// Safe for concurrent use.
type StdinDetector struct {
	minTaskAge time.Duration

	// lsof runs the probe for a pid. Overridable in tests.
	lsof func(pid int) ([]byte, error)
}

// NewStdinDetector creates an lsof-based stdin detector.
func NewStdinDetector(cfg StdinConfig) *StdinDetector {
	minAge := cfg.MinTaskAge
	if minAge <= 0 {
		minAge = 30 * time.Second
	}

	return &StdinDetector{
		minTaskAge: minAge,
		lsof:       runLsof,
	}
}

// Name identifies the heuristic.
func (d *StdinDetector) Name() string {
	return "stdin"
}

// Check reports WaitingForInput when lsof shows descriptor 0 open and the
// age gate passes. Tool spawn failure or non-zero exit is treated as
// "not reading stdin".
func (d *StdinDetector) Check(t *task.Task, ctx PollContext) *AttentionReason {
	if t.Age(time.Now()) <= d.minTaskAge {
		return nil
	}

	out, err := d.lsof(ctx.PID)
	if err != nil {
		return nil
	}
	if !hasDescriptorRows(out) {
		return nil
	}

	return WaitingForInput()
}

// runLsof invokes lsof restricted to the given pid and descriptor 0.
func runLsof(pid int) ([]byte, error) {
	return exec.Command("lsof", "-p", strconv.Itoa(pid), "-a", "-d", "0").Output()
}

// hasDescriptorRows reports whether the lsof output contains more than
// one line: the header plus at least one descriptor row.
func hasDescriptorRows(out []byte) bool {
	text := strings.TrimSuffix(string(out), "\n")
	if text == "" {
		return false
	}
	return len(strings.Split(text, "\n")) > 1
}
