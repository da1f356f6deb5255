package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the typeset banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct{ text, colour string }{
		{"  _                            _   ", "#818cf8"},
		{" | |_ _   _ _ __   ___ ___  ___| |_ ", "#a78bfa"},
		{" | __| | | | '_ \\ / _ / __|/ _ \\ __|", "#c084fc"},
		{" | |_| |_| | |_) |  __\\__ \\  __/ |_ ", "#e879f9"},
		{"  \\__|\\__, | .__/ \\___|___/\\___|\\__|", "#f472b6"},
		{"      |___/|_|                      ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.colour)))
	}
	fmt.Fprintln(w)
}
