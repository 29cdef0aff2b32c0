// Package internal contains integration tests that verify the packages
// work together: configuration-built registries, the monitor's polling
// loop, and event bus delivery to subscribers.
package internal

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/adlrocha/agent-notifications/internal/config"
	"github.com/adlrocha/agent-notifications/internal/detect"
	"github.com/adlrocha/agent-notifications/internal/event"
	"github.com/adlrocha/agent-notifications/internal/monitor"
	"github.com/adlrocha/agent-notifications/internal/procfs"
	"github.com/adlrocha/agent-notifications/internal/task"
)

// sleepyFS reports a process sleeping on a pty with frozen CPU counters.
type sleepyFS struct{}

func (sleepyFS) Stat(pid int) (procfs.Snapshot, error) {
	return procfs.Snapshot{State: 'S', UTime: 100, STime: 50}, nil
}

func (sleepyFS) FDTarget(pid, fd int) (string, error) {
	return "/dev/pts/0", nil
}

// TestConfigToMonitorIntegration drives the full path a CLI invocation
// takes: viper-backed config, registry construction, monitor polling,
// and attention delivery over the bus.
func TestConfigToMonitorIntegration(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	config.SetDefaults()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}

	fs := sleepyFS{}
	bus := event.NewBus()

	var mu sync.Mutex
	var got []event.AttentionEvent
	bus.Subscribe("task.attention", func(e event.Event) {
		mu.Lock()
		got = append(got, e.(event.AttentionEvent))
		mu.Unlock()
	})

	mon := monitor.New(fs, cfg.Detect.Registry(fs),
		monitor.WithInterval(cfg.Monitor.PollInterval()),
		monitor.WithBus(bus),
	)

	tk := task.New("agent-1", 4242)
	tk.CreatedAt = time.Now().Add(-time.Hour)
	if err := mon.Watch(tk); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	t0 := time.Now()
	mon.Poll(t0)
	mon.Poll(t0.Add(10 * time.Second))

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 {
		t.Fatalf("received %d attention events, want 1", len(got))
	}
	if got[0].Reason.Kind() != detect.KindWaitingForInput {
		t.Errorf("attention kind = %v, want KindWaitingForInput", got[0].Reason.Kind())
	}
	if got[0].Detector != "state" {
		t.Errorf("detector = %q, want %q", got[0].Detector, "state")
	}
}

// TestMonitorRunLifecycle verifies the ticker loop publishes start and
// stop events and honors context cancellation.
func TestMonitorRunLifecycle(t *testing.T) {
	bus := event.NewBus()

	var mu sync.Mutex
	var types []string
	bus.SubscribeAll(func(e event.Event) {
		mu.Lock()
		types = append(types, e.EventType())
		mu.Unlock()
	})

	mon := monitor.New(sleepyFS{}, detect.NewRegistry(),
		monitor.WithInterval(10*time.Millisecond),
		monitor.WithBus(bus),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- mon.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after cancellation")
	}

	mu.Lock()
	defer mu.Unlock()
	var started, stopped bool
	for _, typ := range types {
		switch typ {
		case "monitor.started":
			started = true
		case "monitor.stopped":
			stopped = true
		}
	}
	if !started || !stopped {
		t.Errorf("lifecycle events = %v, want monitor.started and monitor.stopped", types)
	}
}

// TestStdinDetectorOptIn verifies the config switch that adds the
// coarse lsof-based detector to the registry.
func TestStdinDetectorOptIn(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	config.SetDefaults()
	viper.Set("detect.stdin.enabled", true)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}

	r := cfg.Detect.Registry(sleepyFS{})
	if r.Len() != 3 {
		t.Fatalf("registry has %d detectors, want 3 with stdin enabled", r.Len())
	}
}
