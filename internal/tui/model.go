// Package tui renders the live task table. The model polls the monitor
// for snapshots on a tick and reacts to attention events pushed over the
// event bus, so flagged tasks surface between refreshes.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adlrocha/agent-notifications/internal/event"
	"github.com/adlrocha/agent-notifications/internal/monitor"
)

// tickMsg drives the periodic snapshot refresh.
type tickMsg time.Time

// busMsg wraps a monitor event delivered through the bus.
type busMsg struct{ ev event.Event }

// Model holds the TUI application state
type Model struct {
	monitor *monitor.Monitor
	refresh time.Duration

	showExited bool

	snapshots []monitor.Snapshot
	events    chan event.Event

	width    int
	quitting bool
}

// Option configures the model.
type Option func(*Model)

// WithRefresh sets the snapshot refresh interval.
func WithRefresh(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.refresh = d
		}
	}
}

// WithShowExited controls whether exited tasks stay in the table.
func WithShowExited(show bool) Option {
	return func(m *Model) { m.showExited = show }
}

// NewModel creates a TUI model over a monitor. If bus is non-nil, the
// model subscribes to all events so attention changes render without
// waiting for the next tick.
func NewModel(mon *monitor.Monitor, bus *event.Bus, opts ...Option) Model {
	m := Model{
		monitor:    mon,
		refresh:    time.Second,
		showExited: true,
		events:     make(chan event.Event, 64),
	}
	for _, opt := range opts {
		opt(&m)
	}

	if bus != nil {
		events := m.events
		bus.SubscribeAll(func(ev event.Event) {
			// Drop rather than block: the tick refresh catches up.
			select {
			case events <- ev:
			default:
			}
		})
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitForEvent())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		m.snapshots = m.monitor.Tasks()
		return m, m.tick()

	case busMsg:
		m.snapshots = m.monitor.Tasks()
		return m, m.waitForEvent()
	}

	return m, nil
}

// tick schedules the next snapshot refresh.
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForEvent blocks on the bus channel and forwards the next event.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return busMsg{ev: <-events}
	}
}

// visible filters snapshots according to the exited-task setting.
func (m Model) visible() []monitor.Snapshot {
	if m.showExited {
		return m.snapshots
	}
	out := make([]monitor.Snapshot, 0, len(m.snapshots))
	for _, s := range m.snapshots {
		if !s.Task.Status.IsTerminal() {
			out = append(out, s)
		}
	}
	return out
}
