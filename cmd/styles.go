package cmd

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles renders terminal output for one writer. Colors are dropped
// automatically when the writer is not a terminal.
type styles struct {
	errorPrefix lipgloss.Style
	branch      lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		errorPrefix: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		branch:      r.NewStyle().Bold(true),
	}
}

// ErrorPrefix is the leading tag of every error line written to w.
func ErrorPrefix(w io.Writer) string {
	return newStyles(w).errorPrefix.Render("[Error]")
}
