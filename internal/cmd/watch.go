package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/adlrocha/agent-notifications/internal/config"
	"github.com/adlrocha/agent-notifications/internal/errors"
	"github.com/adlrocha/agent-notifications/internal/event"
	"github.com/adlrocha/agent-notifications/internal/logging"
	"github.com/adlrocha/agent-notifications/internal/monitor"
	"github.com/adlrocha/agent-notifications/internal/procfs"
	"github.com/adlrocha/agent-notifications/internal/task"
	"github.com/adlrocha/agent-notifications/internal/tui"
)

var (
	watchPIDs   []int
	watchLabels []string
	watchTUI    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch processes and report when they need attention",
	Long: `Watch polls the given processes and reports when one appears to
be waiting for input or has stalled. With --tui a live task table is
shown; otherwise attention changes are printed as they happen.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().IntSliceVarP(&watchPIDs, "pid", "p", nil, "process ID to watch (repeatable)")
	watchCmd.Flags().StringSliceVarP(&watchLabels, "label", "l", nil, "label for the matching --pid (repeatable)")
	watchCmd.Flags().BoolVarP(&watchTUI, "tui", "t", false, "show the live task table")
	_ = watchCmd.MarkFlagRequired("pid")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logging.NewLogger(cfg.Logging.LogDir(), cfg.Logging.Level, cfg.Logging.Rotation())
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer log.Close()

	fs := procfs.Default()
	if cfg.Monitor.ProcRoot != "" {
		fs = procfs.NewFS(cfg.Monitor.ProcRoot)
	}

	bus := event.NewBus()
	mon := monitor.New(fs, cfg.Detect.Registry(fs),
		monitor.WithInterval(cfg.Monitor.PollInterval()),
		monitor.WithLogger(log),
		monitor.WithBus(bus),
	)

	for i, pid := range watchPIDs {
		t := task.New(fmt.Sprintf("task-%d", pid), pid)
		if i < len(watchLabels) {
			t.Label = watchLabels[i]
		}
		if err := mon.Watch(t); err != nil {
			return fmt.Errorf("cannot watch pid %d: %w", pid, err)
		}
	}

	// Threshold changes in the config file apply without a restart.
	config.Watch(func(next *config.Config) {
		mon.SetRegistry(next.Detect.Registry(fs))
		log.Info("configuration reloaded")
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if watchTUI {
		return runWatchTUI(ctx, cancel, cfg, mon, bus)
	}
	return runWatchPlain(ctx, mon, bus)
}

// runWatchTUI drives the bubbletea table while the monitor polls in the
// background.
func runWatchTUI(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, mon *monitor.Monitor, bus *event.Bus) error {
	model := tui.NewModel(mon, bus,
		tui.WithRefresh(cfg.TUI.Refresh()),
		tui.WithShowExited(cfg.TUI.ShowExited),
	)

	go func() {
		_ = mon.Run(ctx)
	}()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	cancel()
	if err != nil && ctx.Err() != nil {
		// Cancelled from the signal handler, not a TUI failure.
		return nil
	}
	return err
}

// runWatchPlain prints attention edges to stdout until interrupted.
func runWatchPlain(ctx context.Context, mon *monitor.Monitor, bus *event.Bus) error {
	attention := styler(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B")))
	cleared := styler(lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")))
	exited := styler(lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")))

	bus.Subscribe("task.attention", func(e event.Event) {
		ev := e.(event.AttentionEvent)
		fmt.Printf("%s %s (pid %d): %s [%s]\n",
			ev.Timestamp().Format("15:04:05"),
			attention(ev.TaskID), ev.PID, attention(ev.Reason.String()), ev.Detector)
	})
	bus.Subscribe("task.attention_cleared", func(e event.Event) {
		ev := e.(event.AttentionClearedEvent)
		fmt.Printf("%s %s (pid %d): %s\n",
			ev.Timestamp().Format("15:04:05"),
			ev.TaskID, ev.PID, cleared("attention cleared"))
	})
	bus.Subscribe("task.exited", func(e event.Event) {
		ev := e.(event.TaskExitedEvent)
		fmt.Printf("%s %s (pid %d): %s\n",
			ev.Timestamp().Format("15:04:05"),
			ev.TaskID, ev.PID, exited("process exited"))
	})

	err := mon.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// styler returns a render function that only applies the style when
// stdout is a terminal.
func styler(style lipgloss.Style) func(string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return func(s string) string { return s }
	}
	return func(s string) string { return style.Render(s) }
}
