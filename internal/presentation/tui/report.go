// Package tui formats reports for terminals.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/typeset"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of f, or 0 if unknown.
func Width(f *os.File) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}

// Markdown formats an inspection report: markup, text form and notes.
func Markdown(name, markup string, r typeset.Report) string {
	var sb strings.Builder
	if name == "" {
		name = "expression"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	fmt.Fprintf(&sb, "## Markup\n\n```tex\n%s\n```\n\n", markup)
	fmt.Fprintf(&sb, "## Text\n\n```\n%s\n```\n", strings.TrimSpace(r.Text))

	sections := []struct {
		title string
		notes []string
	}{
		{"Errors", r.Errors},
		{"Warnings", r.Warnings},
		{"Info", r.Info},
	}
	for _, s := range sections {
		if len(s.notes) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n## %s\n\n", s.title)
		for _, n := range s.notes {
			fmt.Fprintf(&sb, "- `%s`\n", n)
		}
	}
	return sb.String()
}

// WriteDiagnostics writes one line per note, coloured by severity for the
// given profile. termenv.Ascii disables colour.
func WriteDiagnostics(w io.Writer, p termenv.Profile, r typeset.Report) {
	groups := []struct {
		tag, colour string
		notes       []string
	}{
		{"error", "#ef4444", r.Errors},
		{"warning", "#f59e0b", r.Warnings},
		{"info", "#38bdf8", r.Info},
	}
	for _, g := range groups {
		tag := p.String(g.tag).Foreground(p.Color(g.colour)).Bold()
		for _, n := range g.notes {
			fmt.Fprintf(w, "%s: %s\n", tag, n)
		}
	}
}
