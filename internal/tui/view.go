package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/adlrocha/agent-notifications/internal/monitor"
	"github.com/adlrocha/agent-notifications/internal/util"
)

const (
	colTask   = 20
	colPID    = 8
	colStatus = 10
	colIdle   = 10
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("agentmon"))
	b.WriteString("\n")

	snaps := m.visible()
	if len(snaps) == 0 {
		b.WriteString(mutedStyle.Render("no tasks watched"))
		b.WriteString("\n")
	} else {
		b.WriteString(tableStyle.Render(renderTable(snaps, m.width)))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("q: quit"))
	return b.String()
}

// tableChrome is the horizontal space the table border and padding take.
const tableChrome = 4

// attentionWidth returns how many columns the attention cell may use for
// the given terminal width, or 0 before the first WindowSizeMsg (no
// truncation).
func attentionWidth(width int) int {
	if width <= 0 {
		return 0
	}
	w := width - colTask - colPID - colStatus - colIdle - tableChrome
	if w < 4 {
		w = 4
	}
	return w
}

// renderTable lays out the task table without borders; the caller wraps
// it in the table style.
func renderTable(snaps []monitor.Snapshot, width int) string {
	attnWidth := attentionWidth(width)

	var b strings.Builder

	b.WriteString(headerStyle.Render(
		util.PadRight("TASK", colTask) +
			util.PadRight("PID", colPID) +
			util.PadRight("STATUS", colStatus) +
			util.PadRight("IDLE", colIdle) +
			"ATTENTION"))
	b.WriteString("\n")

	for i, s := range snaps {
		b.WriteString(renderRow(s, attnWidth))
		if i < len(snaps)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderRow(s monitor.Snapshot, attnWidth int) string {
	status := s.Task.Status.String()

	attention := mutedStyle.Render("-")
	if s.Reason != nil {
		attention = attentionStyle.Render(s.Reason.String())
		if attnWidth > 0 {
			attention = util.TruncateANSI(attention, attnWidth)
		}
	}

	return util.PadRight(util.TruncateString(s.Task.DisplayName(), colTask-2), colTask) +
		util.PadRight(fmt.Sprintf("%d", s.Task.PID), colPID) +
		util.PadRight(statusStyle(status).Render(status), colStatus) +
		util.PadRight(formatIdle(s.IdleFor), colIdle) +
		attention
}

// formatIdle renders an idle duration compactly, or "-" when unknown.
func formatIdle(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Truncate(time.Second).String()
}
