package unparse

import (
	"github.com/mgree/smoosh/core/ast"
	"github.com/mgree/smoosh/core/invariant"
	"github.com/mgree/smoosh/core/markup"
)

// ExpansionState renders a word list partway through expansion. The start,
// failure and end of an expansion also post a section to the crumb.
func (r *Renderer) ExpansionState(el markup.Element, s ast.ExpansionState) {
	invariant.NotNil(s, "expansion state")
	el.Tag("step-" + s.Tag())

	switch s := s.(type) {
	case *ast.ExpStart:
		r.milestone("play", "Starting expansion")
		r.Words(el.Open(markup.KindSpan), s.W)
	case *ast.ExpExpand:
		r.ExpandedWords(el.Open(markup.KindSpan), s.F)
		r.Words(el.Open(markup.KindSpan), s.W)
	case *ast.ExpSplit:
		r.ExpandedWords(el.Open(markup.KindSpan), s.F)
	case *ast.ExpPath:
		r.IntermediateFields(el.Open(markup.KindSpan), s.Ifs)
	case *ast.ExpQuote:
		r.IntermediateFields(el.Open(markup.KindSpan), s.Ifs)
	case *ast.ExpError:
		r.milestone("warning circle", "Expansion error")
		r.Fields(el.Open(markup.KindSpan, "error"), s.Msg)
	case *ast.ExpDone:
		r.milestone("check circle", "Expansion complete")
		r.Fields(el.Open(markup.KindSpan), s.F)
	default:
		invariant.Unreachable(string(ast.FamilyExpansionState), s)
	}
}

func (r *Renderer) milestone(icon, label string) {
	crumb := r.crumb()
	crumb.Open(markup.KindDivider)
	section := crumb.Open(markup.KindSection)
	section.Open(markup.KindIcon, icon)
	section.Text(label)
}

// Term renders a trace term, which is either a statement or, for traces of
// a bare expansion, an expansion state.
func (r *Renderer) Term(el markup.Element, t ast.Term) {
	switch t := t.(type) {
	case ast.Stmt:
		r.Stmt(el, t)
	case ast.ExpansionState:
		r.ExpansionState(el, t)
	default:
		invariant.Unreachable("term", t)
	}
}
