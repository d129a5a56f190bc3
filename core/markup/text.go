package markup

import (
	"strings"
)

// PlainText renders n as text. Field separators become single spaces, icons
// are dropped, comments read "# ...", block nodes sit on their own lines and
// panels are separated by a blank line.
func PlainText(n *Node) string {
	w := &textWriter{}
	w.node(n)
	return w.b.String()
}

// styler wraps a text run given the roles of its enclosing nodes, innermost
// last. It returns the run unchanged when no role is styled.
type styler func(roles [][]string, s string) string

type textWriter struct {
	b     strings.Builder
	style styler
	roles [][]string
}

func (w *textWriter) atLineStart() bool {
	s := w.b.String()
	return len(s) == 0 || s[len(s)-1] == '\n'
}

func (w *textWriter) lastByte() byte {
	s := w.b.String()
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

func (w *textWriter) newline() {
	if !w.atLineStart() {
		w.b.WriteByte('\n')
	}
}

func (w *textWriter) text(s string) {
	if w.style == nil || len(w.roles) == 0 {
		w.b.WriteString(s)
		return
	}
	// style line by line so styles never straddle a newline
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if i > 0 {
			w.b.WriteByte('\n')
		}
		if line != "" {
			w.b.WriteString(w.style(w.roles, line))
		}
	}
}

func (w *textWriter) children(n *Node) {
	w.roles = append(w.roles, n.Roles)
	for i, c := range n.Children {
		if n.Kind == KindRow && i > 0 {
			w.b.WriteByte('\t')
		}
		w.node(c)
	}
	w.roles = w.roles[:len(w.roles)-1]
}

func (w *textWriter) node(n *Node) {
	switch n.Kind {
	case KindText:
		w.text(n.Lit)
	case KindSep:
		w.b.WriteByte(' ')
	case KindIcon:
	case KindBreak:
		w.b.WriteByte('\n')
	case KindDivider:
		w.b.WriteString(" > ")
	case KindComment:
		w.roles = append(w.roles, append([]string{"comment"}, n.Roles...))
		w.text("# ")
		w.roles = w.roles[:len(w.roles)-1]
		w.children(n)
	case KindSection:
		if !w.atLineStart() && w.lastByte() != ' ' {
			w.b.WriteByte(' ')
		}
		w.children(n)
	case KindPre:
		start := w.b.Len()
		w.children(n)
		if w.b.Len() > start {
			w.newline()
		}
	case KindPanel:
		w.newline()
		if w.b.Len() > 0 && !strings.HasSuffix(w.b.String(), "\n\n") {
			w.b.WriteByte('\n')
		}
		w.children(n)
		w.newline()
	default:
		if n.Kind.Block() {
			w.newline()
			w.children(n)
			w.newline()
			return
		}
		w.children(n)
	}
}
