// Package config defines the agentmon configuration surface and its
// viper bindings. Configuration is layered: built-in defaults, then the
// config file, then AGENTMON_* environment variables, then flags.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/adlrocha/agent-notifications/internal/detect"
	"github.com/adlrocha/agent-notifications/internal/logging"
	"github.com/adlrocha/agent-notifications/internal/procfs"
)

// Config represents the complete agentmon configuration
type Config struct {
	Monitor MonitorConfig `mapstructure:"monitor"`
	Detect  DetectConfig  `mapstructure:"detect"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// MonitorConfig controls the polling loop
type MonitorConfig struct {
	// PollIntervalMs is how often watched tasks are swept (in milliseconds)
	PollIntervalMs int `mapstructure:"poll_interval_ms"`
	// ProcRoot overrides the process pseudo-filesystem root. Only useful
	// for testing against a fake tree; leave empty for the real one.
	ProcRoot string `mapstructure:"proc_root"`
}

// DetectConfig controls the detector registry and its thresholds
type DetectConfig struct {
	State StateConfig `mapstructure:"state"`
	Stall StallConfig `mapstructure:"stall"`
	Stdin StdinConfig `mapstructure:"stdin"`
}

// StateConfig tunes the sleep-state detector
type StateConfig struct {
	// MinTaskAgeSeconds suppresses verdicts for tasks younger than this (default: 10)
	MinTaskAgeSeconds int `mapstructure:"min_task_age_seconds"`
	// MinIdleSeconds suppresses verdicts until the task has been idle this long (default: 5)
	MinIdleSeconds int `mapstructure:"min_idle_seconds"`
	// TerminalPatterns are glob patterns matched against the stdin target
	// to decide whether the process is attached to a terminal
	TerminalPatterns []string `mapstructure:"terminal_patterns"`
}

// StallConfig tunes the CPU-stall detector
type StallConfig struct {
	// TimeoutSeconds is how long a task may sit with frozen CPU counters
	// before being flagged (default: 600)
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	// MinTaskAgeSeconds suppresses verdicts for tasks younger than this (default: 30)
	MinTaskAgeSeconds int `mapstructure:"min_task_age_seconds"`
}

// StdinConfig tunes the lsof-based stdin detector.
// This detector shells out on every poll, so it is disabled by default.
type StdinConfig struct {
	// Enabled adds the stdin detector to the registry (default: false)
	Enabled bool `mapstructure:"enabled"`
	// MinTaskAgeSeconds suppresses verdicts for tasks younger than this (default: 30)
	MinTaskAgeSeconds int `mapstructure:"min_task_age_seconds"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// RefreshMs is how often the task table refreshes (in milliseconds)
	RefreshMs int `mapstructure:"refresh_ms"`
	// ShowExited keeps exited tasks visible in the table (default: true)
	ShowExited bool `mapstructure:"show_exited"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether file logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the directory log files are written to.
	// If empty, defaults to <config dir>/logs.
	Dir string `mapstructure:"dir"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Monitor: MonitorConfig{
			PollIntervalMs: 2000,
			ProcRoot:       "",
		},
		Detect: DetectConfig{
			State: StateConfig{
				MinTaskAgeSeconds: 10,
				MinIdleSeconds:    5,
				TerminalPatterns:  append([]string(nil), detect.DefaultTerminalPatterns...),
			},
			Stall: StallConfig{
				TimeoutSeconds:    600,
				MinTaskAgeSeconds: 30,
			},
			Stdin: StdinConfig{
				Enabled:           false, // Shells out to lsof; opt-in only
				MinTaskAgeSeconds: 30,
			},
		},
		TUI: TUIConfig{
			RefreshMs:  1000,
			ShowExited: true,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			Dir:        "",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// PollInterval returns the polling interval as a time.Duration
func (c *MonitorConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// Refresh returns the TUI refresh interval as a time.Duration
func (c *TUIConfig) Refresh() time.Duration {
	return time.Duration(c.RefreshMs) * time.Millisecond
}

// Rotation converts the logging configuration into rotation settings.
func (c *LoggingConfig) Rotation() logging.RotationConfig {
	return logging.RotationConfig{
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
	}
}

// LogDir returns the resolved log directory, or "" when file logging is
// disabled (the logger then writes to stderr).
func (c *LoggingConfig) LogDir() string {
	if !c.Enabled {
		return ""
	}
	if c.Dir != "" {
		return c.Dir
	}
	return filepath.Join(ConfigDir(), "logs")
}

// Registry builds the detector registry described by this configuration.
// Disabled detectors are simply absent from the result.
func (c *DetectConfig) Registry(fs procfs.Reader) *detect.Registry {
	detectors := []detect.Detector{
		detect.NewStateDetector(fs, detect.StateConfig{
			MinTaskAge:       time.Duration(c.State.MinTaskAgeSeconds) * time.Second,
			MinIdle:          time.Duration(c.State.MinIdleSeconds) * time.Second,
			TerminalPatterns: c.State.TerminalPatterns,
		}),
		detect.NewStallDetector(fs, detect.StallConfig{
			Timeout:    time.Duration(c.Stall.TimeoutSeconds) * time.Second,
			MinTaskAge: time.Duration(c.Stall.MinTaskAgeSeconds) * time.Second,
		}),
	}
	if c.Stdin.Enabled {
		detectors = append(detectors, detect.NewStdinDetector(detect.StdinConfig{
			MinTaskAge: time.Duration(c.Stdin.MinTaskAgeSeconds) * time.Second,
		}))
	}
	return detect.NewRegistry(detectors...)
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Monitor defaults
	viper.SetDefault("monitor.poll_interval_ms", defaults.Monitor.PollIntervalMs)
	viper.SetDefault("monitor.proc_root", defaults.Monitor.ProcRoot)

	// Detect defaults
	viper.SetDefault("detect.state.min_task_age_seconds", defaults.Detect.State.MinTaskAgeSeconds)
	viper.SetDefault("detect.state.min_idle_seconds", defaults.Detect.State.MinIdleSeconds)
	viper.SetDefault("detect.state.terminal_patterns", defaults.Detect.State.TerminalPatterns)
	viper.SetDefault("detect.stall.timeout_seconds", defaults.Detect.Stall.TimeoutSeconds)
	viper.SetDefault("detect.stall.min_task_age_seconds", defaults.Detect.Stall.MinTaskAgeSeconds)
	viper.SetDefault("detect.stdin.enabled", defaults.Detect.Stdin.Enabled)
	viper.SetDefault("detect.stdin.min_task_age_seconds", defaults.Detect.Stdin.MinTaskAgeSeconds)

	// TUI defaults
	viper.SetDefault("tui.refresh_ms", defaults.TUI.RefreshMs)
	viper.SetDefault("tui.show_exited", defaults.TUI.ShowExited)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// Watch re-reads the config file on change and invokes fn with the new
// configuration. Invalid intermediate states (e.g. a half-saved file)
// are skipped.
func Watch(fn func(*Config)) {
	viper.OnConfigChange(func(fsnotify.Event) {
		cfg, err := Load()
		if err != nil {
			return
		}
		fn(cfg)
	})
	viper.WatchConfig()
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "agentmon")
	}
	// Fall back to ~/.config/agentmon
	home, err := os.UserHomeDir()
	if err != nil {
		return ".agentmon"
	}
	return filepath.Join(home, ".config", "agentmon")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
