package cmd

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRootHasSubcommands(t *testing.T) {
	want := map[string]bool{"watch": false, "check": false}

	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestWatchFlags(t *testing.T) {
	for _, name := range []string{"pid", "label", "tui"} {
		if watchCmd.Flags().Lookup(name) == nil {
			t.Errorf("watch command is missing flag --%s", name)
		}
	}
}

func TestCheckFlags(t *testing.T) {
	for _, name := range []string{"pid", "settle"} {
		if checkCmd.Flags().Lookup(name) == nil {
			t.Errorf("check command is missing flag --%s", name)
		}
	}
}

func TestConfigFlagBound(t *testing.T) {
	if rootCmd.PersistentFlags().Lookup("config") == nil {
		t.Error("root command is missing persistent flag --config")
	}
}

func TestStylerPreservesText(t *testing.T) {
	render := styler(lipgloss.NewStyle().Bold(true))

	// Whether or not stdout is a terminal, the rendered output must carry
	// the original text (possibly wrapped in escape sequences).
	out := render("needs attention")
	if !strings.Contains(out, "needs attention") {
		t.Errorf("styled output %q does not contain the input text", out)
	}
}
