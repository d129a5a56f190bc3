package unparse

import (
	"github.com/mgree/smoosh/core/ast"
	"github.com/mgree/smoosh/core/invariant"
	"github.com/mgree/smoosh/core/markup"
)

// Words renders a pre-expansion word list.
func (r *Renderer) Words(el markup.Element, w ast.Words) {
	el.Tag("words")
	for _, e := range w {
		r.entry(el, e)
	}
}

func (r *Renderer) entry(el markup.Element, e ast.Entry) {
	switch e := e.(type) {
	case *ast.Str:
		el.Open(markup.KindSpan, "entry-S").Text(e.V)
	case *ast.Ctrl:
		r.Control(el.Open(markup.KindSpan, "entry-K"), e.V)
	case *ast.FieldSep:
		el.Sep()
	case *ast.ESym:
		r.Symbolic(el.Open(markup.KindSpan, "entry-ESym"), e.V)
	default:
		invariant.Unreachable(string(ast.FamilyEntry), e)
	}
}

// SymbolicString renders plain runs as text and placeholders as symbolic
// spans.
func (r *Renderer) SymbolicString(el markup.Element, s ast.SymbolicString) {
	el.Tag("symbolic-string")
	for _, c := range s {
		switch c := c.(type) {
		case ast.Char:
			el.Text(string(c))
		case ast.Symbolic:
			r.Symbolic(el.Open(markup.KindSpan), c)
		default:
			invariant.Unreachable("symbolic string element", c)
		}
	}
}

// Symbolic renders a placeholder character.
func (r *Renderer) Symbolic(el markup.Element, s ast.Symbolic) {
	el.Tag("symbolic", "symbolic-"+s.Tag())
	switch s := s.(type) {
	case *ast.SymCommand:
		el.Text("$(")
		r.Stmt(el.Open(markup.KindSpan), s.Stmt)
		el.Text(")")
	case *ast.SymArith:
		el.Text("$((")
		r.Fields(el.Open(markup.KindSpan), s.F)
		el.Text("))")
	case *ast.SymPat:
		el.Text("${")
		r.SymbolicString(el.Open(markup.KindSpan, "param-varname"), s.S)
		el.Open(markup.KindSpan, "param-format").Text(r.matchOp(ast.Prefix, s.Mode))
		r.SymbolicString(el.Open(markup.KindSpan), s.Pat)
		el.Text("}")
	default:
		invariant.Unreachable(string(ast.FamilySymbolic), s)
	}
}

// Fields renders split fields, joined by a field-separator span so field
// boundaries stay distinct from separators inside a field.
func (r *Renderer) Fields(el markup.Element, f ast.Fields) {
	el.Tag("fields")
	for i, s := range f {
		if i > 0 {
			el.Open(markup.KindSpan, "field-separator").Text(" ")
		}
		r.SymbolicString(el.Open(markup.KindSpan, "field"), s)
	}
}

// ExpandedWords renders control-code expansion output.
func (r *Renderer) ExpandedWords(el markup.Element, w ast.ExpandedWords) {
	el.Tag("expanded-words")
	for _, x := range w {
		r.expandedWord(el.Open(markup.KindSpan, "expanded-word-"+x.Tag()), x)
	}
}

func (r *Renderer) expandedWord(el markup.Element, w ast.ExpandedWord) {
	switch w := w.(type) {
	case *ast.UsrF:
		el.Sep()
	case *ast.ExpS:
		el.Tag("generated")
		el.Text(w.V)
	case *ast.At:
		el.Tag("generated", "dollar-at")
		r.Fields(el.Open(markup.KindSpan), w.F)
	case *ast.DQuo:
		el.Tag("quoted")
		el.Text(`"`)
		r.SymbolicString(el.Open(markup.KindSpan), w.S)
		el.Text(`"`)
	case *ast.UsrS:
		el.Text(w.V)
	case *ast.EWSym:
		r.Symbolic(el.Open(markup.KindSpan), w.S)
	default:
		invariant.Unreachable(string(ast.FamilyExpandedWord), w)
	}
}

// IntermediateFields renders the fields between splitting and quote
// removal. Both separator kinds show as a single space.
func (r *Renderer) IntermediateFields(el markup.Element, ifs ast.IntermediateFields) {
	el.Tag("intermediate-fields")
	for _, f := range ifs {
		tf := el.Open(markup.KindSpan, "tmp-field", "tmp-field-"+f.Tag())
		switch f := f.(type) {
		case *ast.WFS, *ast.FS:
			tf.Text(" ")
		case *ast.Field:
			r.SymbolicString(tf.Open(markup.KindSpan), f.S)
		case *ast.QField:
			tf.Text(`"`)
			r.SymbolicString(tf.Open(markup.KindSpan), f.S)
			tf.Text(`"`)
		default:
			invariant.Unreachable(string(ast.FamilyTmpField), f)
		}
	}
}

// Value renders a phase-dependent payload by its concrete type.
func (r *Renderer) Value(el markup.Element, v ast.Value) {
	switch v := v.(type) {
	case ast.Words:
		r.Words(el, v)
	case ast.SymbolicString:
		r.SymbolicString(el, v)
	case ast.Fields:
		r.Fields(el, v)
	case ast.ExpandedWords:
		r.ExpandedWords(el, v)
	case ast.IntermediateFields:
		r.IntermediateFields(el, v)
	case ast.ExpansionState:
		r.ExpansionState(el, v)
	default:
		invariant.Unreachable("value", v)
	}
}

// valueEmpty reports whether v renders as nothing. An expansion state is
// never empty.
func valueEmpty(v ast.Value) bool {
	switch v := v.(type) {
	case ast.Words:
		return len(v) == 0
	case ast.SymbolicString:
		return len(v) == 0
	case ast.Fields:
		return len(v) == 0
	case ast.ExpandedWords:
		return len(v) == 0
	case ast.IntermediateFields:
		return len(v) == 0
	}
	return v == nil
}
