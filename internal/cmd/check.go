package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/adlrocha/agent-notifications/internal/config"
	"github.com/adlrocha/agent-notifications/internal/detect"
	"github.com/adlrocha/agent-notifications/internal/procfs"
	"github.com/adlrocha/agent-notifications/internal/task"
)

var (
	checkPID    int
	checkSettle time.Duration
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run every detector once against a process",
	Long: `Check samples the process, waits a settle period so CPU movement
can be observed, then runs every detector and prints its verdict.

Age gates are bypassed: a one-shot check answers "does this look like it
needs attention right now", not "has it been quiet long enough".`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().IntVarP(&checkPID, "pid", "p", 0, "process ID to check")
	checkCmd.Flags().DurationVar(&checkSettle, "settle", time.Second, "how long to wait between CPU samples")
	_ = checkCmd.MarkFlagRequired("pid")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fs := procfs.Default()
	if cfg.Monitor.ProcRoot != "" {
		fs = procfs.NewFS(cfg.Monitor.ProcRoot)
	}

	first, err := fs.Stat(checkPID)
	if err != nil {
		return fmt.Errorf("cannot inspect pid %d: %w", checkPID, err)
	}
	time.Sleep(checkSettle)

	// Zero age gates: the process predates this invocation by an unknown
	// amount, so a backdated task keeps the gates out of the way.
	registry := checkRegistry(cfg, fs)

	t := task.New(fmt.Sprintf("check-%d", checkPID), checkPID)
	t.CreatedAt = time.Now().Add(-24 * time.Hour)

	cpu := first.CPUTime()
	verdicts := registry.CheckAll(t, detect.PollContext{
		PID:          checkPID,
		LastCheck:    time.Now().Add(-checkSettle),
		LastCPUTime:  &cpu,
		IdleDuration: checkSettle,
	})

	flagged := styler(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B")))
	quiet := styler(lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")))

	needsAttention := false
	for _, v := range verdicts {
		if v.Reason != nil {
			needsAttention = true
			fmt.Printf("%-8s %s\n", v.Detector, flagged(v.Reason.String()))
		} else {
			fmt.Printf("%-8s %s\n", v.Detector, quiet("no verdict"))
		}
	}

	if needsAttention {
		fmt.Println(flagged("process needs attention"))
	} else {
		fmt.Println(quiet("process looks busy"))
	}
	return nil
}

// checkRegistry builds the configured registry with the stdin detector
// always included and the stall timeout clamped to the settle window, so
// a single observation can produce verdicts.
func checkRegistry(cfg *config.Config, fs procfs.Reader) *detect.Registry {
	return detect.NewRegistry(
		detect.NewStateDetector(fs, detect.StateConfig{
			MinTaskAge:       time.Second,
			MinIdle:          0,
			TerminalPatterns: cfg.Detect.State.TerminalPatterns,
		}),
		detect.NewStallDetector(fs, detect.StallConfig{
			Timeout:    checkSettle / 2,
			MinTaskAge: time.Second,
		}),
		detect.NewStdinDetector(detect.StdinConfig{MinTaskAge: time.Second}),
	)
}
