package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/adlrocha/agent-notifications/internal/detect"
	"github.com/adlrocha/agent-notifications/internal/procfs"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Monitor.PollIntervalMs != 2000 {
		t.Errorf("PollIntervalMs = %d, want 2000", cfg.Monitor.PollIntervalMs)
	}
	if cfg.Detect.Stall.TimeoutSeconds != 600 {
		t.Errorf("Stall.TimeoutSeconds = %d, want 600", cfg.Detect.Stall.TimeoutSeconds)
	}
	if cfg.Detect.State.MinTaskAgeSeconds != 10 || cfg.Detect.State.MinIdleSeconds != 5 {
		t.Errorf("state thresholds = %d/%d, want 10/5",
			cfg.Detect.State.MinTaskAgeSeconds, cfg.Detect.State.MinIdleSeconds)
	}
	if cfg.Detect.Stdin.Enabled {
		t.Error("stdin detector must be disabled by default")
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("default config fails validation: %v", ValidationErrors(errs))
	}
}

func TestLoadWithDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Monitor.PollInterval() != 2*time.Second {
		t.Errorf("PollInterval() = %v, want 2s", cfg.Monitor.PollInterval())
	}
	if cfg.TUI.Refresh() != time.Second {
		t.Errorf("Refresh() = %v, want 1s", cfg.TUI.Refresh())
	}
	if len(cfg.Detect.State.TerminalPatterns) == 0 {
		t.Error("terminal patterns should default to the built-in set")
	}
}

func TestLoadWithOverrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	viper.Set("monitor.poll_interval_ms", 500)
	viper.Set("detect.stall.timeout_seconds", 120)
	viper.Set("detect.stdin.enabled", true)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Monitor.PollInterval() != 500*time.Millisecond {
		t.Errorf("PollInterval() = %v, want 500ms", cfg.Monitor.PollInterval())
	}
	if cfg.Detect.Stall.TimeoutSeconds != 120 {
		t.Errorf("Stall.TimeoutSeconds = %d, want 120", cfg.Detect.Stall.TimeoutSeconds)
	}
	if !cfg.Detect.Stdin.Enabled {
		t.Error("stdin detector should be enabled by override")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	viper.Set("monitor.poll_interval_ms", 1)
	viper.Set("logging.level", "loud")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() accepted an invalid configuration")
	}
}

func TestRegistryComposition(t *testing.T) {
	fs := procfs.Default()

	cfg := Default()
	r := cfg.Detect.Registry(fs)
	if r.Len() != 2 {
		t.Errorf("default registry has %d detectors, want 2", r.Len())
	}

	cfg.Detect.Stdin.Enabled = true
	r = cfg.Detect.Registry(fs)
	if r.Len() != 3 {
		t.Errorf("registry with stdin enabled has %d detectors, want 3", r.Len())
	}
	if _, ok := r.Detectors()[2].(*detect.StdinDetector); !ok {
		t.Errorf("detector 2 is %T, want *StdinDetector", r.Detectors()[2])
	}
}

func TestRegistryThresholds(t *testing.T) {
	cfg := Default()
	cfg.Detect.Stall.TimeoutSeconds = 90

	r := cfg.Detect.Registry(procfs.Default())
	stall, ok := r.Detectors()[1].(*detect.StallDetector)
	if !ok {
		t.Fatalf("detector 1 is %T, want *StallDetector", r.Detectors()[1])
	}
	if stall.Timeout() != 90*time.Second {
		t.Errorf("stall timeout = %v, want 90s", stall.Timeout())
	}
}

func TestLoggingRotation(t *testing.T) {
	cfg := Default()
	rot := cfg.Logging.Rotation()

	if rot.MaxSizeMB != 10 || rot.MaxBackups != 3 {
		t.Errorf("rotation = %+v, want 10MB/3 backups", rot)
	}
}

func TestLogDir(t *testing.T) {
	cfg := Default()

	cfg.Logging.Enabled = false
	if dir := cfg.Logging.LogDir(); dir != "" {
		t.Errorf("LogDir() = %q with logging disabled, want empty", dir)
	}

	cfg.Logging.Enabled = true
	cfg.Logging.Dir = "/var/log/agentmon"
	if dir := cfg.Logging.LogDir(); dir != "/var/log/agentmon" {
		t.Errorf("LogDir() = %q, want explicit dir", dir)
	}
}
