package util

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exactly max", "hello", 5, "hello"},
		{"longer than max", "hello world", 8, "hello..."},
		{"max too small", "hello", 3, "..."},
		{"multibyte runes", "héllo wörld", 8, "héllo..."},
		{"empty", "", 10, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateString(tc.input, tc.maxLen); got != tc.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tc.input, tc.maxLen, got, tc.want)
			}
		})
	}
}

func TestTruncateANSI(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("hello world")

	got := TruncateANSI(styled, 8)
	if lipgloss.Width(got) > 8 {
		t.Errorf("TruncateANSI width = %d, want <= 8", lipgloss.Width(got))
	}

	// Strings already within the width pass through untouched.
	if got := TruncateANSI("short", 10); got != "short" {
		t.Errorf("TruncateANSI(%q, 10) = %q", "short", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight(%q, 5) = %q", "ab", got)
	}

	// Width is measured visually: ANSI escapes take no columns.
	styled := lipgloss.NewStyle().Bold(true).Render("ab")
	padded := PadRight(styled, 5)
	if lipgloss.Width(padded) != 5 {
		t.Errorf("PadRight styled width = %d, want 5", lipgloss.Width(padded))
	}

	// Already at or past the width still gets a separating space.
	if got := PadRight("abcde", 4); got != "abcde " {
		t.Errorf("PadRight(%q, 4) = %q", "abcde", got)
	}
}
