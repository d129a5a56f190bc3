// Package unparse turns AST snapshots back into shell text.
//
// The output is a markup tree rather than a string: every piece of syntax
// sits in a node whose roles say what it is (a variable name, a redirection,
// a symbolic placeholder, a keyword), so sinks can style it and tests can
// inspect it. markup.PlainText of the tree is the reconstructed command
// line, and for purely syntactic statements that text parses as POSIX shell.
//
// Runtime-only statements (Call, Trapped, EvalLoop, ...) have no source
// form. They render their wrapped statement plus a comment, and the icon
// describing the statement kind goes to the renderer's Crumb element, which
// the trace assembler points at the step's breadcrumb.
package unparse

import (
	"github.com/mgree/smoosh/core/ast"
	"github.com/mgree/smoosh/core/markup"
)

// Tables holds the static lookup data the renderer consults. It is plain
// data so callers can swap glyphs (for a different shell dialect, say)
// without touching the renderer.
type Tables struct {
	// FileFD is the fd a file redirection uses when none is written.
	FileFD map[ast.FileType]int
	// DupFD is the fd a duplication uses when none is written.
	DupFD map[ast.DupType]int
	// FileOp and DupOp are the operator glyphs.
	FileOp map[ast.FileType]string
	DupOp  map[ast.DupType]string
	// FormatOp maps a format tag (Default, NAlt, ...) to its glyph.
	// Substring and Length are handled structurally.
	FormatOp map[string]string
	// SideOp maps a substring side to its single glyph; Longest doubles it.
	SideOp map[ast.SubstringSide]string
}

// DefaultTables returns the POSIX tables.
func DefaultTables() Tables {
	return Tables{
		FileFD: map[ast.FileType]int{
			ast.To:      1,
			ast.Clobber: 1,
			ast.Append:  1,
			ast.From:    0,
			ast.FromTo:  0,
		},
		DupFD: map[ast.DupType]int{
			ast.ToFD:   1,
			ast.FromFD: 0,
		},
		FileOp: map[ast.FileType]string{
			ast.To:      ">",
			ast.Clobber: ">|",
			ast.From:    "<",
			ast.FromTo:  "<>",
			ast.Append:  ">>",
		},
		DupOp: map[ast.DupType]string{
			ast.ToFD:   ">&",
			ast.FromFD: "<&",
		},
		FormatOp: map[string]string{
			"Default":  "-",
			"NDefault": ":-",
			"Assign":   "=",
			"NAssign":  ":=",
			"Error":    "?",
			"NError":   ":?",
			"Alt":      "+",
			"NAlt":     ":+",
		},
		SideOp: map[ast.SubstringSide]string{
			ast.Prefix: "#",
			ast.Suffix: "%",
		},
	}
}

// Renderer unparses AST nodes into markup. A Renderer holds no per-call
// state; the same value may render any number of terms.
type Renderer struct {
	Tables Tables

	// Crumb receives statement icons and expansion progress sections.
	// Nil means markup.Discard.
	Crumb markup.Element

	// Notice, when set, is told about shapes that render fine but should
	// not normally appear, such as an Exact substring match outside a
	// case pattern.
	Notice func(msg string)
}

// New returns a Renderer with the default tables and a discarded crumb.
func New() *Renderer {
	return &Renderer{Tables: DefaultTables()}
}

// WithCrumb returns a copy of r that posts crumb output to el.
func (r *Renderer) WithCrumb(el markup.Element) *Renderer {
	c := *r
	c.Crumb = el
	return &c
}

func (r *Renderer) crumb() markup.Element {
	if r.Crumb == nil {
		return markup.Discard
	}
	return r.Crumb
}

func (r *Renderer) notice(msg string) {
	if r.Notice != nil {
		r.Notice(msg)
	}
}

// RenderStmt unparses s into a fresh span.
func RenderStmt(s ast.Stmt) *markup.Node {
	n := markup.New(markup.KindSpan)
	New().Stmt(n, s)
	return n
}

// Text is the plain shell text of s.
func Text(s ast.Stmt) string {
	return markup.PlainText(RenderStmt(s))
}
