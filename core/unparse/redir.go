package unparse

import (
	"strconv"

	"github.com/mgree/smoosh/core/ast"
	"github.com/mgree/smoosh/core/invariant"
	"github.com/mgree/smoosh/core/markup"
)

// Redirs renders a redirection state in evaluation order: already
// expanded, currently expanding, pending. Redirections are separated by
// field separators.
func (r *Renderer) Redirs(el markup.Element, rs ast.RedirState) {
	el.Tag("redirs")
	first := true
	put := func(rd ast.Redirection) {
		if !first {
			el.Sep()
		}
		first = false
		r.Redirection(el.Open(markup.KindSpan), rd)
	}
	for _, rd := range rs.Expanded {
		put(rd)
	}
	if rs.Current != nil {
		put(rs.Current)
	}
	for _, rd := range rs.Pending {
		put(rd)
	}
}

// Redirection renders one redirection. The source fd is omitted when it is
// the operator's default, so "1>out" renders as ">out".
func (r *Renderer) Redirection(el markup.Element, rd ast.Redirection) {
	el.Tag("redir", "redir-"+rd.Tag())

	switch rd := rd.(type) {
	case *ast.File:
		def, ok := r.Tables.FileFD[rd.Ty]
		invariant.Invariant(ok, "no default fd for file redirection %q", rd.Ty)
		op, ok := r.Tables.FileOp[rd.Ty]
		invariant.Invariant(ok, "no glyph for file redirection %q", rd.Ty)

		r.source(el, rd.Src, def)
		el.Open(markup.KindSpan, "redir-op").Text(op)
		r.Value(el.Open(markup.KindSpan, "redir-target"), rd.Tgt)

	case *ast.Dup:
		def, ok := r.Tables.DupFD[rd.Ty]
		invariant.Invariant(ok, "no default fd for dup %q", rd.Ty)
		op, ok := r.Tables.DupOp[rd.Ty]
		invariant.Invariant(ok, "no glyph for dup %q", rd.Ty)

		r.source(el, rd.Src, def)
		el.Open(markup.KindSpan, "redir-op").Text(op)
		tgt := el.Open(markup.KindSpan, "redir-target")
		switch t := rd.Tgt.(type) {
		case ast.DupFD:
			tgt.Text(strconv.Itoa(int(t)))
		case ast.DupClose:
			tgt.Text("-")
		case *ast.DupWord:
			r.Value(tgt, t.V)
		default:
			invariant.Unreachable("dup target", t)
		}

	case *ast.Heredoc:
		marker := HeredocMarker(rd.W)
		r.source(el, rd.Src, 0)
		el.Open(markup.KindSpan, "redir-op").Text("<<" + marker)
		el.Open(markup.KindBreak)
		r.Value(el.Open(markup.KindPre, "heredoc"), rd.W)
		el.Open(markup.KindSpan, "heredoc-marker").Text(marker)

	default:
		invariant.Unreachable(string(ast.FamilyRedir), rd)
	}
}

func (r *Renderer) source(el markup.Element, src, def int) {
	if src != def {
		el.Open(markup.KindSpan, "redir-src").Text(strconv.Itoa(src))
	}
}
