package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/mgree/smoosh/internal/config"
)

// palette holds the styles used for CLI diagnostics.
type palette struct {
	red    lipgloss.Style
	yellow lipgloss.Style
	gray   lipgloss.Style
}

func newPalette(w io.Writer, useColor bool) palette {
	r := lipgloss.NewRenderer(w)
	if useColor {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return palette{
		red:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		yellow: r.NewStyle().Foreground(lipgloss.Color("3")),
		gray:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// ShouldUseColor reports whether w should get colour: never with
// --no-color or NO_COLOR, otherwise only when w is a terminal.
func ShouldUseColor(w io.Writer, noColorFlag bool) bool {
	if noColorFlag {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(w)
}

// colorEnabled resolves a configured colour mode for w.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return isTerminal(w)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
