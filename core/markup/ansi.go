package markup

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme maps roles to terminal styles.
type Theme map[string]lipgloss.Style

// DefaultTheme returns the role styles used by ANSI, built on r so the
// colour profile is fixed by the caller rather than sniffed from stdout.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		"keyword":  r.NewStyle().Bold(true),
		"variable": r.NewStyle().Foreground(lipgloss.Color("6")),
		"symbolic": r.NewStyle().Foreground(lipgloss.Color("5")).Italic(true),
		"redir":    r.NewStyle().Foreground(lipgloss.Color("3")),
		"comment":  r.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		"crumb":    r.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		"error":    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		"stream":   r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		"local":    r.NewStyle().Faint(true),
	}
}

// ANSI renders n like PlainText with each text run styled by the innermost
// enclosing role that the theme knows.
func ANSI(n *Node, theme Theme) string {
	w := &textWriter{style: theme.render}
	w.node(n)
	return w.b.String()
}

// NewANSIRenderer returns a lipgloss renderer writing to out with a fixed
// 16-colour profile.
func NewANSIRenderer(out io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(termenv.ANSI)
	return r
}

func (t Theme) render(roles [][]string, s string) string {
	for i := len(roles) - 1; i >= 0; i-- {
		for j := len(roles[i]) - 1; j >= 0; j-- {
			if st, ok := t[roles[i][j]]; ok {
				return st.Render(s)
			}
		}
	}
	return s
}
