package detect

import (
	"testing"
	"time"

	"github.com/adlrocha/agent-notifications/internal/procfs"
)

// stalledFS returns a reader reporting a fixed combined CPU time of 1000.
func stalledFS() *fakeFS {
	return &fakeFS{snap: procfs.Snapshot{State: 'S', UTime: 700, STime: 300}}
}

func TestStallDetector_Stalled(t *testing.T) {
	// Timeout 600s, age 40s, previous sample 1000 == current, idle 650s.
	d := NewStallDetector(stalledFS(), DefaultStallConfig())

	reason := d.Check(taskAged(40*time.Second), ctxWith(cpu(1000), 650*time.Second))
	if reason == nil {
		t.Fatal("Check() = nil, want ProcessStalled")
	}
	if reason.Kind() != KindProcessStalled {
		t.Errorf("Kind() = %v, want KindProcessStalled", reason.Kind())
	}
}

func TestStallDetector_CPUProgress(t *testing.T) {
	// Current CPU time 1000 differs from the previous 1002 sample:
	// no stall regardless of idle duration.
	d := NewStallDetector(stalledFS(), DefaultStallConfig())

	for _, idle := range []time.Duration{0, 650 * time.Second, 24 * time.Hour} {
		if reason := d.Check(taskAged(40*time.Second), ctxWith(cpu(1002), idle)); reason != nil {
			t.Errorf("Check(idle=%v) = %v, want nil on CPU progress", idle, reason)
		}
	}
}

func TestStallDetector_FirstPoll(t *testing.T) {
	// Without a previous sample there is nothing to compare: no verdict,
	// whatever the idle duration.
	d := NewStallDetector(stalledFS(), DefaultStallConfig())

	for _, idle := range []time.Duration{0, 650 * time.Second, 24 * time.Hour} {
		if reason := d.Check(taskAged(time.Hour), ctxWith(nil, idle)); reason != nil {
			t.Errorf("Check(idle=%v) = %v, want nil on first poll", idle, reason)
		}
	}
}

func TestStallDetector_IdleBelowTimeout(t *testing.T) {
	d := NewStallDetector(stalledFS(), DefaultStallConfig())

	for _, idle := range []time.Duration{0, 300 * time.Second, 600 * time.Second} {
		if reason := d.Check(taskAged(time.Hour), ctxWith(cpu(1000), idle)); reason != nil {
			t.Errorf("Check(idle=%v) = %v, want nil below timeout", idle, reason)
		}
	}
}

func TestStallDetector_AgeGate(t *testing.T) {
	// The age gate suppresses stall verdicts for tasks at or under 30s,
	// even with a matching sample past the timeout.
	d := NewStallDetector(stalledFS(), DefaultStallConfig())

	for _, age := range []time.Duration{0, 10 * time.Second, 29 * time.Second} {
		if reason := d.Check(taskAged(age), ctxWith(cpu(1000), 650*time.Second)); reason != nil {
			t.Errorf("Check(age=%v) = %v, want nil under age gate", age, reason)
		}
	}
}

func TestStallDetector_CustomTimeout(t *testing.T) {
	d := NewStallDetector(stalledFS(), StallConfig{Timeout: 60 * time.Second})

	if d.Timeout() != 60*time.Second {
		t.Errorf("Timeout() = %v, want 60s", d.Timeout())
	}

	// Idle 90s exceeds the custom 60s timeout.
	if reason := d.Check(taskAged(time.Minute), ctxWith(cpu(1000), 90*time.Second)); reason == nil {
		t.Error("Check() = nil, want ProcessStalled with 60s timeout")
	}
	// But not the default 600s-era idle values below it.
	if reason := d.Check(taskAged(time.Minute), ctxWith(cpu(1000), 30*time.Second)); reason != nil {
		t.Errorf("Check() = %v, want nil below custom timeout", reason)
	}
}

func TestStallDetector_ZeroConfigDefaults(t *testing.T) {
	d := NewStallDetector(stalledFS(), StallConfig{})
	if d.Timeout() != DefaultStallTimeout {
		t.Errorf("Timeout() = %v, want %v", d.Timeout(), DefaultStallTimeout)
	}
}

func TestStallDetector_ReadFailure(t *testing.T) {
	d := NewStallDetector(goneFS(), DefaultStallConfig())

	if reason := d.Check(taskAged(time.Hour), ctxWith(cpu(1000), time.Hour)); reason != nil {
		t.Errorf("Check() = %v, want nil on stat failure", reason)
	}
}

func TestStallDetector_Idempotent(t *testing.T) {
	d := NewStallDetector(stalledFS(), DefaultStallConfig())
	tk := taskAged(time.Hour)
	ctx := ctxWith(cpu(1000), 700*time.Second)

	first := d.Check(tk, ctx)
	second := d.Check(tk, ctx)

	if first == nil || second == nil {
		t.Fatal("expected verdicts from both checks")
	}
	if first.Kind() != second.Kind() {
		t.Error("repeated Check returned different kinds")
	}
}
