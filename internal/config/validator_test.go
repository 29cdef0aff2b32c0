package config

import (
	"strings"
	"testing"
)

func TestValidate_DefaultIsClean(t *testing.T) {
	if errs := Default().Validate(); len(errs) > 0 {
		t.Errorf("default config produced validation errors: %v", ValidationErrors(errs))
	}
}

func TestValidate_Monitor(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*Config)
		field string
	}{
		{"interval too small", func(c *Config) { c.Monitor.PollIntervalMs = 10 }, "monitor.poll_interval_ms"},
		{"interval too large", func(c *Config) { c.Monitor.PollIntervalMs = 120000 }, "monitor.poll_interval_ms"},
		{"null byte in proc root", func(c *Config) { c.Monitor.ProcRoot = "/proc\x00" }, "monitor.proc_root"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.apply(cfg)
			assertFieldError(t, cfg.Validate(), tc.field)
		})
	}
}

func TestValidate_Detect(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*Config)
		field string
	}{
		{"negative state age", func(c *Config) { c.Detect.State.MinTaskAgeSeconds = -1 }, "detect.state.min_task_age_seconds"},
		{"negative state idle", func(c *Config) { c.Detect.State.MinIdleSeconds = -1 }, "detect.state.min_idle_seconds"},
		{"empty pattern", func(c *Config) { c.Detect.State.TerminalPatterns = []string{" "} }, "detect.state.terminal_patterns[0]"},
		{"zero stall timeout", func(c *Config) { c.Detect.Stall.TimeoutSeconds = 0 }, "detect.stall.timeout_seconds"},
		{"negative stall age", func(c *Config) { c.Detect.Stall.MinTaskAgeSeconds = -1 }, "detect.stall.min_task_age_seconds"},
		{"negative stdin age", func(c *Config) { c.Detect.Stdin.MinTaskAgeSeconds = -1 }, "detect.stdin.min_task_age_seconds"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.apply(cfg)
			assertFieldError(t, cfg.Validate(), tc.field)
		})
	}
}

func TestValidate_Logging(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*Config)
		field string
	}{
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"zero max size", func(c *Config) { c.Logging.MaxSizeMB = 0 }, "logging.max_size_mb"},
		{"huge max size", func(c *Config) { c.Logging.MaxSizeMB = 5000 }, "logging.max_size_mb"},
		{"negative backups", func(c *Config) { c.Logging.MaxBackups = -1 }, "logging.max_backups"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.apply(cfg)
			assertFieldError(t, cfg.Validate(), tc.field)
		})
	}
}

func TestValidate_LevelCaseInsensitive(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "DEBUG"

	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("uppercase level rejected: %v", ValidationErrors(errs))
	}
}

func TestValidationErrors_Format(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: 2, Message: "worse"},
	}

	msg := errs.Error()
	if !strings.Contains(msg, "2 validation errors") {
		t.Errorf("aggregate message missing count: %q", msg)
	}
	if !strings.Contains(msg, "a: bad (got: 1)") {
		t.Errorf("aggregate message missing detail: %q", msg)
	}

	single := ValidationErrors{{Field: "a", Value: 1, Message: "bad"}}
	if single.Error() != "a: bad (got: 1)" {
		t.Errorf("single error format = %q", single.Error())
	}
}

func assertFieldError(t *testing.T, errs []ValidationError, field string) {
	t.Helper()
	for _, e := range errs {
		if e.Field == field {
			return
		}
	}
	t.Errorf("no validation error for field %q (got %v)", field, errs)
}
